package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Render(t *testing.T) {
	svc := NewService()

	t.Run("renders basic markdown", func(t *testing.T) {
		html, err := svc.Render("**Fast** vector search for `README` files")
		require.NoError(t, err)
		assert.Contains(t, html, "<strong>Fast</strong>")
		assert.Contains(t, html, "<code>README</code>")
	})

	t.Run("strips script tags", func(t *testing.T) {
		html, err := svc.Render("hello <script>alert(1)</script> world")
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.NotContains(t, html, "alert(1)")
	})

	t.Run("strips inline event handlers", func(t *testing.T) {
		html, err := svc.Render(`<img src="x" onerror="alert(1)">`)
		require.NoError(t, err)
		assert.NotContains(t, html, "onerror")
	})

	t.Run("links get nofollow", func(t *testing.T) {
		html, err := svc.Render("[docs](https://example.com/docs)")
		require.NoError(t, err)
		assert.Contains(t, html, `rel="nofollow`)
	})
}
