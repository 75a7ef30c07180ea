package production

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFloor(t *testing.T) {
	tests := []struct {
		in   string
		want Floor
		ok   bool
	}{
		{"Knitting", FloorKnitting, true},
		{"  KNITTING ", FloorKnitting, true},
		{"final-checking", FloorFinalChecking, true},
		{"Final  Inspection", FloorFinalChecking, true},
		{"2nd Checking", FloorSecondaryChecking, true},
		{"Secondary Checking", FloorSecondaryChecking, true},
		{"ironing", FloorBoarding, true},
		{"Labelling", FloorBranding, true},
		{"shipping", FloorDispatch, true},
		{"embroidery", FloorUnknown, false},
		{"", FloorUnknown, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseFloor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFloorDisplayNamesParseBack(t *testing.T) {
	for _, f := range AllFloors() {
		got, ok := ParseFloor(f.String())
		assert.True(t, ok, f.String())
		assert.Equal(t, f, got)
	}
}

func TestGradingFloors(t *testing.T) {
	var grading []Floor
	for _, f := range AllFloors() {
		if f.IsGrading() {
			grading = append(grading, f)
		}
	}
	assert.Equal(t, []Floor{FloorChecking, FloorSecondaryChecking, FloorFinalChecking}, grading)
}

func TestParseLinkingType(t *testing.T) {
	assert.Equal(t, LinkingAuto, ParseLinkingType("Auto Linking"))
	assert.Equal(t, LinkingAuto, ParseLinkingType("auto"))
	assert.Equal(t, LinkingSemiAuto, ParseLinkingType("semi-auto linking"))
	assert.Equal(t, LinkingManual, ParseLinkingType("Manual Linking"))
	assert.Equal(t, LinkingManual, ParseLinkingType("something else"))
	assert.True(t, LinkingAuto.SkipsLinking())
	assert.False(t, LinkingSemiAuto.SkipsLinking())
}
