package dataset

import "fmt"

// Field names a numeric percentage column of the dataset.
type Field string

const (
	Obese            Field = "obese"
	BachelorOrHigher Field = "bachelorOrHigher"
	CurrentSmoker    Field = "currentSmoker"
	HighSchoolGrad   Field = "highSchoolGrad"
)

// Horizontal lists the fields selectable on the x axis, in label order.
var Horizontal = []Field{Obese, CurrentSmoker}

// Vertical lists the fields the y axis may show.
var Vertical = []Field{BachelorOrHigher, HighSchoolGrad}

func (f Field) IsHorizontal() bool {
	for _, h := range Horizontal {
		if f == h {
			return true
		}
	}
	return false
}

func (f Field) IsVertical() bool {
	for _, v := range Vertical {
		if f == v {
			return true
		}
	}
	return false
}

// ParseField maps a column name to a Field.
func ParseField(name string) (Field, error) {
	switch f := Field(name); f {
	case Obese, BachelorOrHigher, CurrentSmoker, HighSchoolGrad:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}
