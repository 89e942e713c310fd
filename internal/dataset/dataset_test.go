package dataset

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	in := "state,abbr,obese,bachelorOrHigher,currentSmoker\n" +
		"Test,TS,10,20,30\n" +
		"Other,OT,11.5,21.25,31\n"

	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if ds.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", ds.Len())
	}

	r := ds.At(0)
	if r.State != "Test" || r.Abbr != "TS" {
		t.Errorf("unexpected identity: %+v", r)
	}
	if r.Value(Obese) != 10 || r.Value(BachelorOrHigher) != 20 || r.Value(CurrentSmoker) != 30 {
		t.Errorf("unexpected values: %v", r.Values)
	}

	if got := ds.Values(BachelorOrHigher); got[1] != 21.25 {
		t.Errorf("expected 21.25, got %v", got[1])
	}

	if ds.Has(HighSchoolGrad) {
		t.Error("high school column should be absent")
	}
}

func TestParse_OptionalColumn(t *testing.T) {
	in := "state,abbr,obese,bachelorOrHigher,currentSmoker,highSchoolGrad\nTest,TS,10,20,30,88\n"

	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if !ds.Has(HighSchoolGrad) {
		t.Fatal("expected high school column")
	}
	if v := ds.At(0).Value(HighSchoolGrad); v != 88 {
		t.Errorf("expected 88, got %v", v)
	}
}

func TestParse_MalformedNumberIsNaN(t *testing.T) {
	in := "state,abbr,obese,bachelorOrHigher,currentSmoker\nTest,TS,n/a,20,30\n"

	ds, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("malformed cell must not fail the load: %v", err)
	}
	if !math.IsNaN(ds.At(0).Value(Obese)) {
		t.Errorf("expected NaN, got %v", ds.At(0).Value(Obese))
	}
}

func TestParse_MissingColumn(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"no abbr", "state,obese,bachelorOrHigher,currentSmoker\nA,1,2,3\n"},
		{"no smoker", "state,abbr,obese,bachelorOrHigher\nA,AA,1,2\n"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			if !errors.Is(err, ErrLoad) {
				t.Errorf("expected ErrLoad, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	ds, err := Load(context.Background(), filepath.Join("testdata", "states.csv"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if ds.Len() != 4 {
		t.Errorf("expected 4 records, got %d", ds.Len())
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("fixture should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrLoad) {
		t.Errorf("expected ErrLoad, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	ds := New([]Record{
		{State: "A", Abbr: "AA", Values: map[Field]float64{Obese: 120}},
		{State: "B", Abbr: "AA", Values: map[Field]float64{Obese: 10}},
	})

	err := ds.Validate()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("expected ErrOutOfRange in %v", err)
	}
	if !errors.Is(err, ErrDuplicateAbbr) {
		t.Errorf("expected ErrDuplicateAbbr in %v", err)
	}
}

func TestParseField(t *testing.T) {
	f, err := ParseField("currentSmoker")
	if err != nil || f != CurrentSmoker {
		t.Errorf("ParseField(currentSmoker) = %v, %v", f, err)
	}
	if _, err := ParseField("income"); !errors.Is(err, ErrUnknownField) {
		t.Errorf("expected ErrUnknownField, got %v", err)
	}
	if !Obese.IsHorizontal() || BachelorOrHigher.IsHorizontal() {
		t.Error("horizontal classification wrong")
	}
}

func TestParse_BOMHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bom", "\ufeffstate,abbr,obese,bachelorOrHigher,currentSmoker\nTest,TS,10,20,30\n"},
		{"bom and space", "\ufeff state,abbr,obese,bachelorOrHigher,currentSmoker\nTest,TS,10,20,30\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Parse(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("parse failed: %v", err)
			}
			if ds.Len() != 1 || ds.At(0).State != "Test" {
				t.Errorf("unexpected records %+v", ds.Records())
			}
		})
	}
}

func TestValidate_StableOrder(t *testing.T) {
	ds := New([]Record{
		{State: "A", Abbr: "AA", Values: map[Field]float64{
			Obese:            101,
			BachelorOrHigher: -1,
			CurrentSmoker:    200,
			HighSchoolGrad:   150,
		}},
	})

	want := ds.Validate().Error()
	for i := 0; i < 20; i++ {
		if got := ds.Validate().Error(); got != want {
			t.Fatalf("order changed:\n%s\nvs\n%s", got, want)
		}
	}
	if strings.Index(want, "obese") > strings.Index(want, "highSchoolGrad") {
		t.Errorf("expected column order in %q", want)
	}
}

func TestDataset_NilSafe(t *testing.T) {
	var ds *Dataset
	if ds.Len() != 0 || ds.Has(Obese) {
		t.Error("nil dataset should be empty")
	}
	if ds.Records() != nil || ds.Values(Obese) != nil {
		t.Error("nil dataset should return nil slices")
	}
	if r := ds.At(0); r.Abbr != "" {
		t.Errorf("expected zero record, got %+v", r)
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}
