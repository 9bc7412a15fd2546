package author

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xiebiao/geektext/pkg/optional"
)

// 字段长度限制
const (
	MaxNameLen      = 50
	MaxPublisherLen = 50
	MaxBioLen       = 500
)

// Author 作者实体
// 作者与图书是一对多关系，删除作者时图书的author_id被置空（图书保留）
type Author struct {
	ID        uint
	FirstName string
	LastName  string
	Publisher string
	Bio       string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者（工厂方法），同时校验字段
func NewAuthor(firstName, lastName, publisher, bio string) (*Author, error) {
	a := &Author{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		Publisher: publisher,
		Bio:       bio,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// FullName 名 + 空格 + 姓
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Validate 校验必填字段和长度
func (a *Author) Validate() error {
	if a.FirstName == "" || a.LastName == "" {
		return ErrNameRequired
	}
	if utf8.RuneCountInString(a.FirstName) > MaxNameLen || utf8.RuneCountInString(a.LastName) > MaxNameLen {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(a.Publisher) > MaxPublisherLen {
		return ErrPublisherTooLong
	}
	if utf8.RuneCountInString(a.Bio) > MaxBioLen {
		return ErrBioTooLong
	}
	return nil
}

// Patch 部分更新，只有Set的字段会被修改
type Patch struct {
	FirstName optional.Value[string] `json:"first_name"`
	LastName  optional.Value[string] `json:"last_name"`
	Publisher optional.Value[string] `json:"publisher"`
	Bio       optional.Value[string] `json:"bio"`
}

// PatchFields 可更新字段
var PatchFields = []string{"first_name", "last_name", "publisher", "bio"}

// PatchIgnored 查找键和关系字段
var PatchIgnored = []string{"id", "books"}

// Apply 应用部分更新，校验失败时实体保持不变
func (a *Author) Apply(p Patch) error {
	next := *a

	if p.FirstName.Set {
		next.FirstName = strings.TrimSpace(p.FirstName.V)
	}
	if p.LastName.Set {
		next.LastName = strings.TrimSpace(p.LastName.V)
	}
	if p.Publisher.Set {
		next.Publisher = p.Publisher.V
	}
	if p.Bio.Set {
		next.Bio = p.Bio.V
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*a = next
	return nil
}
