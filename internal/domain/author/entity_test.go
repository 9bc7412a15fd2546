package author

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/geektext/pkg/optional"
)

func TestNewAuthor(t *testing.T) {
	a, err := NewAuthor(" Gabriel ", "Garcia Marquez", "Penguin", "")
	require.NoError(t, err)
	assert.Equal(t, "Gabriel", a.FirstName)
	assert.Equal(t, "Gabriel Garcia Marquez", a.FullName())

	_, err = NewAuthor("Gabriel", "", "", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewAuthor("Gabriel", "Garcia", "", strings.Repeat("b", MaxBioLen+1))
	assert.ErrorIs(t, err, ErrBioTooLong)

	_, err = NewAuthor(strings.Repeat("名", MaxNameLen), "姓", "", "")
	assert.NoError(t, err, "长度按字符计算")
}

func TestAuthor_Apply(t *testing.T) {
	a, err := NewAuthor("Gabriel", "Garcia Marquez", "Penguin", "bio")
	require.NoError(t, err)

	require.NoError(t, a.Apply(Patch{Publisher: optional.Of("Vintage")}))
	assert.Equal(t, "Vintage", a.Publisher)
	assert.Equal(t, "Gabriel", a.FirstName)
	assert.Equal(t, "bio", a.Bio)

	err = a.Apply(Patch{LastName: optional.Of(""), Bio: optional.Of("new")})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Equal(t, "Garcia Marquez", a.LastName, "校验失败不应修改实体")
	assert.Equal(t, "bio", a.Bio)
}
