package interpreter

// buildReportJSONSchema returns the canonical-record schema as a generic
// map. It is sent to the model as a structured-output constraint and used
// locally to reject non-conforming responses.
func buildReportJSONSchema() map[string]any {
	amount := map[string]any{"type": "number", "minimum": 0}

	details := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"lender":               map[string]any{"type": "string"},
			"accountType":          map[string]any{"type": "string"},
			"accountNumber":        map[string]any{"type": "string"},
			"ownership":            map[string]any{"type": "string"},
			"accountStatus":        map[string]any{"type": "string"},
			"dateOpened":           map[string]any{"type": "string"},
			"dateReported":         map[string]any{"type": "string"},
			"dateClosed":           map[string]any{"type": "string"},
			"sanctionAmount":       amount,
			"currentBalance":       amount,
			"amountOverdue":        amount,
			"emiAmount":            amount,
			"securityOrCollateral": map[string]any{"type": "string"},
			"dpdHistory":           map[string]any{"type": "string"},
			"rateOfInterest":       map[string]any{"type": []string{"number", "null"}},
			"repaymentTenure":      map[string]any{"type": []string{"integer", "string", "null"}},
			"totalWriteOffAmount":  amount,
			"principalWriteOff":    amount,
			"settlementAmount":     amount,
		},
	}

	loan := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"type":    map[string]any{"type": "string"},
			"status":  map[string]any{"type": "string", "enum": []string{"Active", "Closed", "Settled", "WrittenOff", "Unknown"}},
			"line":    map[string]any{"type": "string"},
			"details": details,
		},
	}

	enquiry := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"institution": map[string]any{"type": "string"},
			"enquiryType": map[string]any{"type": "string"},
			"date":        map[string]any{"type": "string"},
			"amount":      amount,
			"status":      map[string]any{"type": "string"},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"score":        map[string]any{"type": []string{"integer", "null"}, "minimum": 300, "maximum": 900},
			"enquiryCount": map[string]any{"type": "integer", "minimum": 0},
			"dpd":          map[string]any{"type": "string"},
			"totals": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"loanSanctioned":  amount,
					"loanOutstanding": amount,
					"cardLimit":       amount,
					"cardOutstanding": amount,
				},
			},
			"loans":     map[string]any{"type": "array", "items": loan},
			"enquiries": map[string]any{"type": "array", "items": enquiry},
		},
		"required": []string{"totals", "loans", "enquiries"},
	}
}
