package crud

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ramsey-B/arbor/pkg/models"
)

func TestBuildFilterCoercesScalarColumns(t *testing.T) {
	params := url.Values{
		"is_available": {"true"},
		"capacity":     {"4"},
		"cuisine":      {"georgian"},
	}

	filter := buildFilter(models.KitchenDescriptor, params)

	assert.Equal(t, map[string]any{
		"is_available": true,
		"capacity":     4,
		"cuisine":      "georgian",
	}, filter)
}

func TestBuildFilterSkipsReservedAndUnknownParams(t *testing.T) {
	params := url.Values{
		"q":     {"kitchen"},
		"sort":  {"capacity"},
		"order": {"desc"},
		"bogus": {"1"},
		"name":  {"North"},
	}

	filter := buildFilter(models.KitchenDescriptor, params)

	assert.Equal(t, map[string]any{"name": "North"}, filter)
}

func TestBuildFilterSkipsArrayAndJSONColumns(t *testing.T) {
	params := url.Values{
		"amenities":     {"cold-storage"},
		"opening_hours": {"{}"},
		"cuisine":       {"italian"},
	}

	filter := buildFilter(models.KitchenDescriptor, params)

	assert.Equal(t, map[string]any{"cuisine": "italian"}, filter)
}
