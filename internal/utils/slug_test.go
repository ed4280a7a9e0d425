package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Áo Thun Đỏ":            "ao-thun-do",
		"  Summer  Sale 2024 ": "summer-sale-2024",
		"Nike / Air-Max":        "nike-air-max",
		"quần jean":             "quan-jean",
		"!!!":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}
