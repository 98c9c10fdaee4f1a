package objectstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	a := NewAttachments(nil, "arbor-attachments", "https://cdn.example.com/")

	url := a.PublicURL("kitchens/abc/abc_123.jpg")
	assert.Equal(t, "https://cdn.example.com/arbor-attachments/kitchens/abc/abc_123.jpg", url)
}

func TestPublicURLNoTrailingSlash(t *testing.T) {
	a := NewAttachments(nil, "arbor-attachments", "http://localhost:9000")

	url := a.PublicURL("spaces/x/x_1.png")
	assert.Equal(t, "http://localhost:9000/arbor-attachments/spaces/x/x_1.png", url)
}
