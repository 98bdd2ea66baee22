// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

// Addon is an optional add-on pack attached to a product.
type Addon struct {
	AddonCode     string  `json:"addon_code"`
	Name          string  `json:"name"`
	AddonPremium  float64 `json:"addon_premium"`
	CoverageBoost float64 `json:"coverage_boost,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// Product is a purchasable insurance plan template. Products are sourced
// entirely from the backend; the client only re-fetches the full list.
type Product struct {
	ProductCode   string  `json:"product_code"`
	Name          string  `json:"name"`
	InsuranceType string  `json:"insurance_type"`
	CoverageLimit float64 `json:"coverage_limit"`
	Premium       float64 `json:"premium"`
	TenureMonths  int     `json:"tenure_months,omitempty"`
	Description   string  `json:"description,omitempty"`
	Addons        []Addon `json:"addons"`
}

// CoverageDetails describes what a policy covers.
type CoverageDetails struct {
	CoverageItems string  `json:"coverage_items"`
	Exclusions    string  `json:"exclusions"`
	Deductible    float64 `json:"deductible"`
}

// Policy is an insurance contract instance identified by a policy number.
type Policy struct {
	PolicyNumber    string          `json:"policy_number"`
	UserID          int64           `json:"user_id,omitempty"`
	UserName        string          `json:"user_name,omitempty"`
	InsuranceType   string          `json:"insurance_type"`
	CoverageLimit   float64         `json:"coverage_limit"`
	Premium         float64         `json:"premium"`
	Status          string          `json:"status"`
	StartDate       string          `json:"start_date,omitempty"`
	EndDate         string          `json:"end_date,omitempty"`
	IsExpired       bool            `json:"is_expired,omitempty"`
	CoverageDetails CoverageDetails `json:"coverage_details"`
	Addons          []Addon         `json:"addons"`
}
