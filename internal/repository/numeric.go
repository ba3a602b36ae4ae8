package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

func toNumeric(value decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: value.Coefficient(), Exp: value.Exponent(), Valid: true}
}

func fromNumeric(value pgtype.Numeric) decimal.Decimal {
	if !value.Valid || value.Int == nil || value.NaN {
		return decimal.Zero
	}

	return decimal.NewFromBigInt(value.Int, value.Exp)
}

func nullableString(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}

	return *value
}
