package util

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	DefaultSlugMaxLength   = 50
	DefaultSlugMaxAttempts = 10
	slugSuffixLength       = 4
	fallbackSlug           = "course"
	slugAlphabet           = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// Slugify 转为只包含小写字母、数字、下划线和连字符的字符串
// 带音标的字符先分解再去掉组合符号，其余非 ASCII 字符直接丢弃
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn))), s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case r > unicode.MaxASCII:
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingDash = true
		}
	}
	return strings.Trim(b.String(), "-_")
}

// GenerateRandomString 生成 [a-z0-9] 随机串
func GenerateRandomString(n int) string {
	buf := make([]byte, n)
	max := big.NewInt(int64(len(slugAlphabet)))
	for i := range buf {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(fmt.Errorf("crypto/rand unavailable: %w", err))
		}
		buf[i] = slugAlphabet[idx.Int64()]
	}
	return string(buf)
}

// SlugGenerator 生成唯一 slug，冲突时追加随机后缀，尝试次数有上限
type SlugGenerator struct {
	MaxLength   int
	MaxAttempts int
	// Random 测试中可替换
	Random func(n int) string
	// OnCollision 每次冲突回调一次，用于统计
	OnCollision func()
}

func NewSlugGenerator(maxLength, maxAttempts int) *SlugGenerator {
	if maxLength <= slugSuffixLength+1 {
		maxLength = DefaultSlugMaxLength
	}
	if maxAttempts < 1 {
		maxAttempts = DefaultSlugMaxAttempts
	}
	return &SlugGenerator{
		MaxLength:   maxLength,
		MaxAttempts: maxAttempts,
		Random:      GenerateRandomString,
	}
}

// Generate exists 判断候选值是否已被占用
func (g *SlugGenerator) Generate(title string, exists func(candidate string) (bool, error)) (string, error) {
	base := truncateSlug(Slugify(title), g.MaxLength)
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for attempt := 0; attempt < g.MaxAttempts; attempt++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		if g.OnCollision != nil {
			g.OnCollision()
		}
		prefix := truncateSlug(base, g.MaxLength-slugSuffixLength-1)
		candidate = prefix + "-" + g.Random(slugSuffixLength)
	}
	return "", fmt.Errorf("%w: %q after %d attempts", ErrSlugExhausted, base, g.MaxAttempts)
}

func truncateSlug(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], "-_")
}

// IsValidSlug 手动指定的 slug 需满足的格式
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}
