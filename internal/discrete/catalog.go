// Package discrete declares the canonical schema for Discrete Sample
// Summary sheets: the fixed header order, the per-column validation
// rules, and the per-event metadata columns whose values must stay
// constant within a cruise/station group.
package discrete

import (
	"github.com/reedan88/ooicgsn-data-tools/internal/rules"
	"github.com/reedan88/ooicgsn-data-tools/internal/schema"
)

const (
	// TimeLayout is the ISO-8601 timestamp form used throughout the
	// summary sheets: fractional seconds and a literal Z suffix.
	TimeLayout = "2006-01-02T15:04:05.999999Z"

	// FlagPattern is the full-length quality flag: a leading marker
	// followed by 16 binary digits. The ungrouped variant \*0|1{16}
	// seen in legacy sheets is a precedence bug, not a format.
	FlagPattern = `\*(0|1){16}`

	// FlagPatternShort is the 8-character short form.
	FlagPatternShort = `\*(0|1){7}`
)

// Header returns the canonical column order for a Discrete Sample
// Summary sheet.
func Header() []string {
	names := make([]string, len(catalog))
	for i, c := range catalog {
		names[i] = c.name
	}
	return names
}

// MetadataColumns returns the per-event metadata columns that must hold
// a single value across all rows of one station within one cruise.
func MetadataColumns() []string {
	return []string{
		"Cruise",
		"Station",
		"Target Asset",
		"Start Latitude [degrees]",
		"Start Longitude [degrees]",
		"Start Time [UTC]",
		"Cast",
		"Bottom Depth at Start Position [m]",
		"CTD File",
	}
}

// NewSchema builds the full-table schema. The accepted cruise
// identifiers are supplied by the caller; they come from an external
// registry, not from this package.
func NewSchema(acceptedCruises []string) (*schema.Schema, error) {
	cols := make([]schema.ColumnRule, 0, len(catalog))
	for _, c := range catalog {
		validators, err := c.build(acceptedCruises)
		if err != nil {
			return nil, err
		}
		cols = append(cols, schema.ColumnRule{Name: c.name, Validators: validators})
	}
	return schema.New(cols...)
}

// NewGroupedSchema builds the cruise-then-station metadata consistency
// schema.
func NewGroupedSchema() (*schema.GroupedSchema, error) {
	return schema.NewGrouped("Cruise", "Station", MetadataColumns()...)
}

// column is one catalog entry; build assembles its validators, closing
// over the external cruise list where needed.
type column struct {
	name  string
	build func(cruises []string) ([]rules.Validator, error)
}

// measurement is the standard rule for a physical quantity: a decimal
// inside its plausible range, or the fill sentinel.
func measurement(min, max float64) func([]string) ([]rules.Validator, error) {
	return func([]string) ([]rules.Validator, error) {
		rng, err := rules.Range(min, max)
		if err != nil {
			return nil, err
		}
		return []rules.Validator{
			rules.OrFill(rules.And(rules.Decimal(), rng)),
		}, nil
	}
}

// count is the rule for small integer quantities such as cast numbers
// and bottle positions.
func count(min, max float64) func([]string) ([]rules.Validator, error) {
	return func([]string) ([]rules.Validator, error) {
		rng, err := rules.Range(min, max)
		if err != nil {
			return nil, err
		}
		return []rules.Validator{
			rules.OrFill(rules.And(rules.Integer(), rng)),
		}, nil
	}
}

// flag is the rule for quality flag columns: fixed length and the bit
// pattern, each escaped by the fill sentinel.
func flag() func([]string) ([]rules.Validator, error) {
	return func([]string) ([]rules.Validator, error) {
		full, err := rules.Pattern(FlagPattern)
		if err != nil {
			return nil, err
		}
		short, err := rules.Pattern(FlagPatternShort)
		if err != nil {
			return nil, err
		}
		return []rules.Validator{
			rules.OrFill(rules.Length(8, 17)),
			rules.OrFill(rules.Or(full, short)),
		}, nil
	}
}

// timestamp is the rule for UTC time columns.
func timestamp() func([]string) ([]rules.Validator, error) {
	return func([]string) ([]rules.Validator, error) {
		date, err := rules.Date(TimeLayout)
		if err != nil {
			return nil, err
		}
		return []rules.Validator{rules.OrFill(date)}, nil
	}
}

// text is the rule for free-form but non-blank identifier columns.
func text(pattern string) func([]string) ([]rules.Validator, error) {
	return func([]string) ([]rules.Validator, error) {
		p, err := rules.Pattern(pattern)
		if err != nil {
			return nil, err
		}
		return []rules.Validator{rules.OrFill(p)}, nil
	}
}

// freeText accepts anything, including the empty cell.
func freeText() func([]string) ([]rules.Validator, error) {
	return func([]string) ([]rules.Validator, error) {
		p, err := rules.Pattern(`(?s).*`)
		if err != nil {
			return nil, err
		}
		return []rules.Validator{p.WithMessage("free-text column")}, nil
	}
}

// cruiseID checks membership in the externally supplied registry.
func cruiseID() func([]string) ([]rules.Validator, error) {
	return func(cruises []string) ([]rules.Validator, error) {
		return []rules.Validator{
			rules.OneOf(cruises...).WithMessage("cruise identifier is not in the accepted cruise list"),
		}, nil
	}
}

// catalog is the canonical sheet definition, in header order. Ranges are
// the plausible physical envelopes for each quantity, not climatology.
var catalog = []column{
	{"Cruise", cruiseID()},
	{"Station", count(0, 1000)},
	{"Target Asset", text(`\S.*`)},
	{"Start Latitude [degrees]", measurement(-90, 90)},
	{"Start Longitude [degrees]", measurement(-180, 180)},
	{"Start Time [UTC]", timestamp()},
	{"Cast", count(0, 100)},
	{"Bottom Depth at Start Position [m]", measurement(0, 11000)},
	{"CTD File", text(`[\w.-]+\.(hex|cnv|dat)`)},
	{"CTD Bottle Closure Time [UTC]", timestamp()},
	{"Niskin/Bottle Position", count(1, 24)},
	{"Niskin Flag", flag()},
	{"CTD Pressure [db]", measurement(0, 6000)},
	{"CTD Pressure Flag", flag()},
	{"CTD Depth [m]", measurement(0, 6000)},
	{"CTD Latitude [deg]", measurement(-90, 90)},
	{"CTD Longitude [deg]", measurement(-180, 180)},
	{"CTD Temperature 1 [deg C]", measurement(-5, 40)},
	{"CTD Temperature 2 [deg C]", measurement(-5, 40)},
	{"CTD Temperature Flag", flag()},
	{"CTD Conductivity 1 [S/m]", measurement(0, 9)},
	{"CTD Conductivity 2 [S/m]", measurement(0, 9)},
	{"CTD Conductivity Flag", flag()},
	{"CTD Salinity 1 [psu]", measurement(0, 42)},
	{"CTD Salinity 2 [psu]", measurement(0, 42)},
	{"CTD Salinity Flag", flag()},
	{"CTD Oxygen [mL/L]", measurement(0, 15)},
	{"CTD Oxygen Flag", flag()},
	{"CTD Fluorescence [mg/m^3]", measurement(0, 50)},
	{"CTD Fluorescence Flag", flag()},
	{"CTD Beam Attenuation [1/m]", measurement(0, 5)},
	{"CTD Beam Attenuation Flag", flag()},
	{"Discrete Oxygen [mL/L]", measurement(0, 15)},
	{"Discrete Oxygen Flag", flag()},
	{"Discrete Chlorophyll [ug/L]", measurement(0, 50)},
	{"Discrete Phaeopigment [ug/L]", measurement(0, 50)},
	{"Discrete Fluorescence Flag", flag()},
	{"Discrete Salinity [psu]", measurement(0, 42)},
	{"Discrete Salinity Flag", flag()},
	{"Discrete Nitrate [uM]", measurement(0, 500)},
	{"Discrete Nitrite [uM]", measurement(0, 500)},
	{"Discrete Phosphate [uM]", measurement(0, 500)},
	{"Discrete Silicate [uM]", measurement(0, 500)},
	{"Discrete Ammonium [uM]", measurement(0, 500)},
	{"Discrete Nutrients Flag", flag()},
	{"Discrete pH [Total scale]", measurement(6, 9.5)},
	{"Discrete pH Flag", flag()},
	{"Discrete Alkalinity [umol/kg]", measurement(0, 3000)},
	{"Discrete Alkalinity Flag", flag()},
	{"Discrete DIC [umol/kg]", measurement(0, 3000)},
	{"Discrete DIC Flag", flag()},
	{"Discrete pCO2 [uatm]", measurement(0, 2000)},
	{"Discrete pCO2 Flag", flag()},
	{"Calculated Alkalinity [umol/kg]", measurement(0, 3000)},
	{"Calculated DIC [umol/kg]", measurement(0, 3000)},
	{"Calculated pCO2 [uatm]", measurement(0, 2000)},
	{"Calculated pH", measurement(6, 9.5)},
	{"Comments", freeText()},
}
