package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobForm struct {
	Title    string  `json:"title" binding:"required,min=5"`
	Company  *string `json:"company" binding:"omitempty,min=2"`
	Password string  `json:"password" trim:"false"`
}

func bind(t *testing.T, body string) (jobForm, error) {
	t.Helper()
	Init()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	var f jobForm
	err := JSON.Bind(req, &f)
	return f, err
}

func TestJSONTrimsBeforeValidating(t *testing.T) {
	_, err := bind(t, `{"title":"      "}`)
	require.Error(t, err)
	assert.Equal(t, map[string]string{"title": "is required"}, ToDetails(err))

	_, err = bind(t, `{"title":"  Go  "}`)
	assert.Equal(t, map[string]string{"title": "must be at least 5 characters"}, ToDetails(err))

	_, err = bind(t, `{"title":"Backend Engineer","company":"  A "}`)
	assert.Equal(t, map[string]string{"company": "must be at least 2 characters"}, ToDetails(err))

	f, err := bind(t, `{"title":"  Backend Engineer ","company":" Acme ","password":" secret "}`)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", f.Title)
	assert.Equal(t, "Acme", *f.Company)
	assert.Equal(t, " secret ", f.Password)
}

func TestJSONDecodeErrors(t *testing.T) {
	_, err := bind(t, ``)
	assert.Equal(t, map[string]string{"payload": "request body is required"}, ToDetails(err))
	_, err = bind(t, `{"title":`)
	assert.Error(t, err)
}

func TestTrimStringsIgnoresNonStructs(t *testing.T) {
	s := "  x "
	TrimStrings(&s)
	TrimStrings(nil)
	assert.Equal(t, "  x ", s)
}
