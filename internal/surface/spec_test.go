package surface

import (
	"errors"
	"testing"

	"github.com/sitegrade/sitegrade/pkg/constants"
)

func TestSpecValidate(t *testing.T) {
	tests := []struct {
		name  string
		spec  Spec
		ok    bool
		field string
	}{
		{
			name: "Flat",
			spec: Spec{Name: "pad", Kind: constants.SurfaceKindFlat, Height: 100},
			ok:   true,
		},
		{
			name: "SlopedInRange",
			spec: Spec{Name: "apron", Kind: constants.SurfaceKindSloped, SlopePercent: 5, MinSlope: 2, MaxSlope: 8},
			ok:   true,
		},
		{
			name:  "SlopedOutOfRange",
			spec:  Spec{Name: "apron", Kind: constants.SurfaceKindSloped, SlopePercent: 12, MinSlope: 2, MaxSlope: 8},
			ok:    false,
			field: "slope_percent",
		},
		{
			name: "AutoFitIgnoresManualRange",
			spec: Spec{Name: "apron", Kind: constants.SurfaceKindSloped, SlopePercent: 12, AutoFit: true, MinSlope: 2, MaxSlope: 8},
			ok:   true,
		},
		{
			name:  "MaxBelowMin",
			spec:  Spec{Name: "apron", Kind: constants.SurfaceKindSloped, SlopePercent: 5, MinSlope: 8, MaxSlope: 2},
			ok:    false,
			field: "max_slope",
		},
		{
			name:  "NegativeMin",
			spec:  Spec{Name: "apron", Kind: constants.SurfaceKindSloped, SlopePercent: 5, MinSlope: -1, MaxSlope: 8},
			ok:    false,
			field: "min_slope",
		},
		{
			name:  "NegativeSlope",
			spec:  Spec{Name: "apron", Kind: constants.SurfaceKindSloped, SlopePercent: -3, MinSlope: 0, MaxSlope: 8},
			ok:    false,
			field: "slope_percent",
		},
		{
			name:  "UnknownKind",
			spec:  Spec{Name: "pad", Kind: "curved"},
			ok:    false,
			field: "kind",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.spec.Validate()
			if test.ok {
				if err != nil {
					t.Errorf("Validate(%s) = %v, expected nil", test.name, err)
				}
				return
			}
			var specErr *InvalidSpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("Validate(%s) = %v, expected InvalidSpecError", test.name, err)
			}
			if specErr.Field != test.field {
				t.Errorf("Validate(%s) field = %q, expected %q", test.name, specErr.Field, test.field)
			}
		})
	}
}
