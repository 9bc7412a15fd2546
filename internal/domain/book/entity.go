package book

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xiebiao/geektext/pkg/optional"
	"github.com/xiebiao/geektext/pkg/validator"
)

// 默认值与字段限制
const (
	DefaultPrice = 25

	MaxISBNLen        = 20
	MaxTitleLen       = 100
	MaxGenreLen       = 100
	MaxPublisherLen   = 100
	MaxDescriptionLen = 500
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. ISBN是业务唯一标识，按原样存储（保留'-'和空格），查找也按原样匹配
// 2. 价格为整数，默认25
// 3. AuthorID可空：作者被删除后图书保留，author_id置空
// 4. DatePublished只保存日历日期
type Book struct {
	ID            uint
	ISBN          string
	Title         string
	Description   string
	Genre         string
	Publisher     string
	Price         int
	CopiesSold    int
	DatePublished *time.Time
	AuthorID      *uint
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Fields 创建图书的字段
// Price为nil时使用默认价格
type Fields struct {
	ISBN          string
	Title         string
	Description   string
	Genre         string
	Publisher     string
	Price         *int
	CopiesSold    int
	DatePublished string
	AuthorID      *uint
}

// NewBook 创建图书(工厂方法)
// ISBN格式由Service按配置的规则校验，这里只检查必填和长度
func NewBook(f Fields) (*Book, error) {
	b := &Book{
		ISBN:        strings.TrimSpace(f.ISBN),
		Title:       f.Title,
		Description: f.Description,
		Genre:       f.Genre,
		Publisher:   f.Publisher,
		Price:       DefaultPrice,
		CopiesSold:  f.CopiesSold,
		AuthorID:    f.AuthorID,
	}
	if f.Price != nil {
		b.Price = *f.Price
	}
	if f.DatePublished != "" {
		d, err := validator.ParseDate(f.DatePublished)
		if err != nil {
			return nil, err
		}
		b.DatePublished = &d
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate 校验必填字段、长度和数值范围
func (b *Book) Validate() error {
	switch {
	case b.ISBN == "":
		return ErrISBNRequired
	case utf8.RuneCountInString(b.ISBN) > MaxISBNLen:
		return ErrISBNTooLong
	case strings.TrimSpace(b.Title) == "":
		return ErrTitleRequired
	case utf8.RuneCountInString(b.Title) > MaxTitleLen:
		return ErrTitleTooLong
	case strings.TrimSpace(b.Genre) == "":
		return ErrGenreRequired
	case utf8.RuneCountInString(b.Genre) > MaxGenreLen:
		return ErrGenreTooLong
	case strings.TrimSpace(b.Description) == "":
		return ErrDescriptionRequired
	case utf8.RuneCountInString(b.Description) > MaxDescriptionLen:
		return ErrDescriptionTooLong
	case utf8.RuneCountInString(b.Publisher) > MaxPublisherLen:
		return ErrPublisherTooLong
	case b.Price < 0:
		return ErrInvalidPrice
	case b.CopiesSold < 0:
		return ErrInvalidCopiesSold
	}
	return nil
}

// Patch 图书部分更新
// isbn和id是查找键，不可更新
type Patch struct {
	Title         optional.Value[string] `json:"title"`
	Description   optional.Value[string] `json:"description"`
	Genre         optional.Value[string] `json:"genre"`
	Publisher     optional.Value[string] `json:"publisher"`
	Price         optional.Value[int]    `json:"price"`
	CopiesSold    optional.Value[int]    `json:"copies_sold"`
	DatePublished optional.Value[string] `json:"date_published"`
	AuthorID      optional.Value[uint]   `json:"author_id"`
}

// PatchFields 可更新字段
var PatchFields = []string{
	"title", "description", "genre", "publisher",
	"price", "copies_sold", "date_published", "author_id",
}

// PatchIgnored 查找键和关系字段，出现在请求体中时静默丢弃
var PatchIgnored = []string{"id", "isbn", "author", "ratings", "comments", "wishlists", "shopping_carts"}

// NewAuthorID 补丁中新的作者ID，第二个返回值表示需要校验作者是否存在
func (p Patch) NewAuthorID() (uint, bool) {
	return p.AuthorID.Get()
}

// Apply 应用部分更新
// 校验失败时实体保持不变；author_id传null表示解除作者关联
func (b *Book) Apply(p Patch) error {
	next := *b

	if p.Title.Set {
		next.Title = p.Title.V
	}
	if p.Description.Set {
		next.Description = p.Description.V
	}
	if p.Genre.Set {
		next.Genre = p.Genre.V
	}
	if p.Publisher.Set {
		next.Publisher = p.Publisher.V
	}
	if p.Price.Set {
		if p.Price.Null {
			return ErrInvalidPrice
		}
		next.Price = p.Price.V
	}
	if p.CopiesSold.Set {
		if p.CopiesSold.Null {
			return ErrInvalidCopiesSold
		}
		next.CopiesSold = p.CopiesSold.V
	}
	if p.DatePublished.Set {
		if p.DatePublished.Null || p.DatePublished.V == "" {
			next.DatePublished = nil
		} else {
			d, err := validator.ParseDate(p.DatePublished.V)
			if err != nil {
				return err
			}
			next.DatePublished = &d
		}
	}
	if p.AuthorID.Set {
		if p.AuthorID.Null {
			next.AuthorID = nil
		} else {
			id := p.AuthorID.V
			next.AuthorID = &id
		}
	}

	if err := next.Validate(); err != nil {
		return err
	}
	*b = next
	return nil
}
