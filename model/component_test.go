package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bis-med-it/gosdmx/model"
)

// The representation precedence law: local representation wins over the
// concept's core representation, with String as the terminal default.
func TestRepresentationPrecedence(t *testing.T) {
	coreFacets := &model.Facets{Pattern: "[A-Z]+"}
	localFacets := &model.Facets{MaxLength: intp(3)}
	coreCodes := &model.Codelist{ID: "CL_FREQ", Codes: []model.Code{{ID: "A"}, {ID: "M"}}}
	localCodes := &model.Codelist{ID: "CL_FREQ", Codes: []model.Code{{ID: "A"}}}

	concept := model.Concept{ID: "FREQ", Dtype: model.Alpha, Facets: coreFacets, Codes: coreCodes}

	tests := []struct {
		name      string
		component model.Component
		dtype     model.DataType
		facets    *model.Facets
		codes     *model.Codelist
	}{
		{
			name:      "local wins",
			component: model.Component{ID: "FREQ", Concept: concept, LocalDtype: model.String, LocalFacets: localFacets, LocalCodes: localCodes},
			dtype:     model.String,
			facets:    localFacets,
			codes:     localCodes,
		},
		{
			name:      "core when no local",
			component: model.Component{ID: "FREQ", Concept: concept},
			dtype:     model.Alpha,
			facets:    coreFacets,
			codes:     coreCodes,
		},
		{
			name:      "terminal defaults",
			component: model.Component{ID: "FREQ"},
			dtype:     model.String,
			facets:    nil,
			codes:     nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.dtype, tt.component.Dtype())
			assert.Same(t, tt.facets, tt.component.Facets())
			assert.Same(t, tt.codes, tt.component.Enumeration())
		})
	}
}

func TestFacetsOrNil(t *testing.T) {
	var empty model.Facets
	assert.Nil(t, empty.OrNil())

	nonEmpty := model.Facets{IsSequence: true}
	assert.NotNil(t, nonEmpty.OrNil())
}

func intp(n int) *int { return &n }
