package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/geektext/pkg/optional"
	"github.com/xiebiao/geektext/pkg/validator"
)

func validFields() Fields {
	return Fields{
		ISBN:        "1-87-876587-9879",
		Title:       "One Hundred Years of Solitude",
		Description: "novel",
		Genre:       "Fiction",
		Publisher:   "Harper",
	}
}

func TestNewBook_Defaults(t *testing.T) {
	b, err := NewBook(validFields())
	require.NoError(t, err)

	assert.Equal(t, DefaultPrice, b.Price)
	assert.Equal(t, 0, b.CopiesSold)
	assert.Nil(t, b.DatePublished)
	assert.Nil(t, b.AuthorID)
	assert.Equal(t, "1-87-876587-9879", b.ISBN, "ISBN按原样保存")
}

func TestNewBook_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(f *Fields)
		want   error
	}{
		{"缺少ISBN", func(f *Fields) { f.ISBN = "" }, ErrISBNRequired},
		{"ISBN过长", func(f *Fields) { f.ISBN = strings.Repeat("1", MaxISBNLen+1) }, ErrISBNTooLong},
		{"缺少标题", func(f *Fields) { f.Title = " " }, ErrTitleRequired},
		{"缺少类型", func(f *Fields) { f.Genre = "" }, ErrGenreRequired},
		{"缺少描述", func(f *Fields) { f.Description = "" }, ErrDescriptionRequired},
		{"描述过长", func(f *Fields) { f.Description = strings.Repeat("d", MaxDescriptionLen+1) }, ErrDescriptionTooLong},
		{"负价格", func(f *Fields) { p := -1; f.Price = &p }, ErrInvalidPrice},
		{"负销量", func(f *Fields) { f.CopiesSold = -3 }, ErrInvalidCopiesSold},
		{"日期格式错误", func(f *Fields) { f.DatePublished = "05/14/2001" }, validator.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.modify(&f)
			_, err := NewBook(f)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewBook_ExplicitZeroPrice(t *testing.T) {
	f := validFields()
	zero := 0
	f.Price = &zero
	f.DatePublished = "2001/05/14"

	b, err := NewBook(f)
	require.NoError(t, err)
	assert.Equal(t, 0, b.Price)
	assert.Equal(t, "2001-05-14", validator.FormatDate(b.DatePublished))
}

func TestBook_Apply(t *testing.T) {
	b, err := NewBook(validFields())
	require.NoError(t, err)

	t.Run("只修改提供的字段", func(t *testing.T) {
		require.NoError(t, b.Apply(Patch{Price: optional.Of(30)}))
		assert.Equal(t, 30, b.Price)
		assert.Equal(t, "One Hundred Years of Solitude", b.Title)
		assert.Equal(t, "Fiction", b.Genre)
	})

	t.Run("校验失败不修改实体", func(t *testing.T) {
		err := b.Apply(Patch{Title: optional.Of("New title"), Price: optional.Of(-5)})
		assert.ErrorIs(t, err, ErrInvalidPrice)
		assert.Equal(t, "One Hundred Years of Solitude", b.Title)
		assert.Equal(t, 30, b.Price)
	})

	t.Run("设置和清除作者", func(t *testing.T) {
		require.NoError(t, b.Apply(Patch{AuthorID: optional.Of[uint](7)}))
		require.NotNil(t, b.AuthorID)
		assert.Equal(t, uint(7), *b.AuthorID)

		require.NoError(t, b.Apply(Patch{AuthorID: optional.Null[uint]()}))
		assert.Nil(t, b.AuthorID)
	})

	t.Run("日期", func(t *testing.T) {
		require.NoError(t, b.Apply(Patch{DatePublished: optional.Of("1967-05-30")}))
		assert.Equal(t, "1967-05-30", validator.FormatDate(b.DatePublished))

		err := b.Apply(Patch{DatePublished: optional.Of("yesterday")})
		assert.ErrorIs(t, err, validator.ErrInvalidDate)
		assert.Equal(t, "1967-05-30", validator.FormatDate(b.DatePublished))

		require.NoError(t, b.Apply(Patch{DatePublished: optional.Null[string]()}))
		assert.Nil(t, b.DatePublished)
	})

	t.Run("null价格无效", func(t *testing.T) {
		assert.ErrorIs(t, b.Apply(Patch{Price: optional.Null[int]()}), ErrInvalidPrice)
	})
}

func TestListParams_Normalize(t *testing.T) {
	p := ListParams{Page: 0, PageSize: 500}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)

	p = ListParams{}
	p.Normalize()
	assert.Equal(t, 20, p.PageSize)
}
