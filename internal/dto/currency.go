package dto

import (
	"github.com/mresults/fxconvert/internal/core/domain"
)

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// SelectedCurrencyResponse defines the data returned for the visitor's
// resolved currency, including which precedence level produced it.
type SelectedCurrencyResponse struct {
	CurrencyResponse
	Source string `json:"source"`
}

// ConvertRequest carries the query parameters of a conversion call. The
// currency parameter doubles as the request override for resolution; when it
// is absent the stored or default currency is used.
type ConvertRequest struct {
	Value    string `form:"value" binding:"required"`
	Currency string `form:"currency" binding:"omitempty,currencycode"`
}

// ConvertResponse defines the data returned for a conversion.
type ConvertResponse struct {
	Formatted   string           `json:"formatted"`
	Currency    CurrencyResponse `json:"currency"`
	Unconverted bool             `json:"unconverted,omitempty"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		Code:   curr.Code,
		Name:   curr.Name,
		Symbol: curr.Symbol,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i, curr := range currencies {
		res[i] = ToCurrencyResponse(curr) // Reuse the single converter
	}
	return res
}

// ToSelectedCurrencyResponse converts a domain.SelectedCurrency to its DTO.
func ToSelectedCurrencyResponse(selected domain.SelectedCurrency) SelectedCurrencyResponse {
	return SelectedCurrencyResponse{
		CurrencyResponse: ToCurrencyResponse(selected.Currency),
		Source:           string(selected.Source),
	}
}

// ToConvertResponse converts a domain.Conversion to its DTO.
func ToConvertResponse(conversion domain.Conversion) ConvertResponse {
	return ConvertResponse{
		Formatted:   conversion.Formatted,
		Currency:    ToCurrencyResponse(conversion.Currency),
		Unconverted: conversion.Unconverted,
	}
}
