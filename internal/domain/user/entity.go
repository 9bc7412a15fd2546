package user

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xiebiao/geektext/pkg/optional"
)

// 字段长度限制
const (
	MaxUsernameLen = 50
	MaxNameLen     = 50
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. 用户名是业务唯一标识，路由中以用户名定位用户
// 2. 密码已加密存储（bcrypt），序列化时永不输出
// 3. IsAdmin决定能否执行管理操作，鉴权时以数据库中的值为准
// 4. 每个用户最多一个心愿单和一个购物车（由wishlist/cart的user_id唯一索引保证）
type User struct {
	ID        uint
	Username  string
	FirstName string
	LastName  string
	Password  string // bcrypt哈希值
	IsAdmin   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword, firstName, lastName string) *User {
	now := time.Now()
	return &User{
		Username:  strings.TrimSpace(username),
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate 校验用户名和姓名
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrUsernameRequired
	}
	if utf8.RuneCountInString(u.Username) > MaxUsernameLen {
		return ErrUsernameTooLong
	}
	if utf8.RuneCountInString(u.FirstName) > MaxNameLen || utf8.RuneCountInString(u.LastName) > MaxNameLen {
		return ErrNameTooLong
	}
	return nil
}

// Patch 用户资料部分更新
// Password是明文，由Service校验强度并加密后写入
type Patch struct {
	FirstName optional.Value[string] `json:"first_name"`
	LastName  optional.Value[string] `json:"last_name"`
	Password  optional.Value[string] `json:"password"`
}

// PatchFields 可更新字段
var PatchFields = []string{"first_name", "last_name", "password"}

// PatchIgnored 查找键和关系字段
var PatchIgnored = []string{"id", "username", "wishlist", "shopping_cart", "ratings", "comments"}

// applyProfile 应用姓名修改，密码由Service处理
func (u *User) applyProfile(p Patch, hashedPassword string) error {
	next := *u
	if p.FirstName.Set {
		next.FirstName = p.FirstName.V
	}
	if p.LastName.Set {
		next.LastName = p.LastName.V
	}
	if hashedPassword != "" {
		next.Password = hashedPassword
	}

	if err := next.Validate(); err != nil {
		return err
	}
	next.UpdatedAt = time.Now()
	*u = next
	return nil
}
