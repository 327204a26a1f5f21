package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Validate(t *testing.T) {
	start := time.Date(2021, 3, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, -1, 0)

	tests := []struct {
		name      string
		profile   Profile
		wantField string
	}{
		{
			name: "valid",
			profile: Profile{
				Experiences: []Experience{{Company: "Acme", Position: "Engineer", StartDate: start}},
				Education:   []Education{{Institution: "Uni", Degree: "BSc", Field: "CS", StartDate: start}},
			},
		},
		{
			name:    "empty",
			profile: Profile{},
		},
		{
			name:      "missing company",
			profile:   Profile{Experiences: []Experience{{Position: "Engineer", StartDate: start}}},
			wantField: "experiences[0].company",
		},
		{
			name: "end before start",
			profile: Profile{Experiences: []Experience{
				{Company: "Acme", Position: "Engineer", StartDate: start},
				{Company: "Acme", Position: "Lead", StartDate: start, EndDate: &before},
			}},
			wantField: "experiences[1].end_date",
		},
		{
			name:      "missing start",
			profile:   Profile{Education: []Education{{Institution: "Uni", Degree: "BSc", Field: "CS"}}},
			wantField: "education[0].start_date",
		},
		{
			name:      "blank field of study",
			profile:   Profile{Education: []Education{{Institution: "Uni", Degree: "BSc", Field: " ", StartDate: start}}},
			wantField: "education[0].field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestProfile_DecodeCurrentPosition(t *testing.T) {
	doc := `{"experiences":[{"company":"Acme","position":"Engineer","start_date":"2021-03-01T00:00:00Z"}]}`

	var p Profile
	require.NoError(t, json.Unmarshal([]byte(doc), &p))
	require.Len(t, p.Experiences, 1)
	assert.True(t, p.Experiences[0].Current())
	assert.NoError(t, p.Validate())
}
