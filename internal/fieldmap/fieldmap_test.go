package fieldmap

import (
	"encoding/json"
	"testing"

	"portfolio-admin/internal/apperr"
	"portfolio-admin/internal/domain/works"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func patch(t *testing.T, src string) map[string]json.RawMessage {
	t.Helper()
	var m map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(src), &m))
	return m
}

func TestSchemaNames(t *testing.T) {
	s := MustFor(&works.Artwork{}, "artwork")

	col, ok := s.Column("imageUrl")
	require.True(t, ok)
	assert.Equal(t, "image_url", col)

	col, ok = s.Column("exhibitionHistory")
	require.True(t, ok)
	assert.Equal(t, "exhibition_history", col)

	col, ok = s.Column("sortOrder")
	require.True(t, ok)
	assert.Equal(t, "sort_order", col)

	name, ok := s.JSONName("thumbnail_url")
	require.True(t, ok)
	assert.Equal(t, "thumbnailUrl", name)
}

func TestColumnsDecodesIntoFieldTypes(t *testing.T) {
	s := MustFor(&works.Artwork{}, "artwork")

	cols, err := s.Columns(patch(t, `{"title":"Untitled","price":1200.5,"series":null,"sortOrder":3}`))
	require.NoError(t, err)

	assert.Equal(t, "Untitled", cols["title"])
	require.IsType(t, (*float64)(nil), cols["price"])
	assert.Equal(t, 1200.5, *cols["price"].(*float64))
	assert.Nil(t, cols["series"].(*string))
	assert.Equal(t, 3, cols["sort_order"])
}

func TestColumnsDecodesExhibitionHistory(t *testing.T) {
	s := MustFor(&works.Artwork{}, "artwork")

	cols, err := s.Columns(patch(t, `{"exhibitionHistory":[{"name":"Solo Show","venue":"Gallery X","dates":"Jan 2024"}]}`))
	require.NoError(t, err)

	history, ok := cols["exhibition_history"].(*datatypes.JSONSlice[works.ExhibitionEntry])
	require.True(t, ok)
	a := works.Artwork{ExhibitionHistory: history}
	require.Len(t, a.Exhibitions(), 1)
	assert.Equal(t, works.ExhibitionKey{Name: "Solo Show", Venue: "Gallery X", Dates: "Jan 2024"}, a.Exhibitions()[0].Key())
}

func TestColumnsRejectsUnknownField(t *testing.T) {
	s := MustFor(&works.Artwork{}, "artwork")

	_, err := s.Columns(patch(t, `{"colour":"red"}`))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestColumnsRejectsReadOnlyFields(t *testing.T) {
	s := MustFor(&works.Artwork{}, "artwork")

	for _, src := range []string{`{"id":"x"}`, `{"version":4}`, `{"createdAt":"2024-01-01T00:00:00Z"}`} {
		_, err := s.Columns(patch(t, src))
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), src)
	}
}

func TestColumnsRejectsWrongType(t *testing.T) {
	s := MustFor(&works.Artwork{}, "artwork")

	_, err := s.Columns(patch(t, `{"sortOrder":"first"}`))
	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindInvalidFormat, appErr.Kind)
	assert.Equal(t, "sortOrder", appErr.Field)
}

func TestEncodeRenamesColumns(t *testing.T) {
	s := MustFor(&works.Artwork{}, "artwork")

	out := s.Encode(map[string]any{"image_url": "a.jpg", "sort_order": 2, "bogus": 1})
	assert.Equal(t, map[string]any{"imageUrl": "a.jpg", "sortOrder": 2}, out)
}
