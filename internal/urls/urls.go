// Package urls 维护命名路由，路由注册和地址反解使用同一份模板
package urls

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
)

const (
	// CourseDetail 课程详情页
	CourseDetail = "courses:single-course"
)

var (
	ErrNoReverseMatch = errors.New("no reverse match")
	ErrMissingParam   = errors.New("missing route parameter")
)

type Params map[string]string

type Registry struct {
	mu     sync.RWMutex
	routes map[string]string
}

func NewRegistry() *Registry {
	return &Registry{routes: make(map[string]string)}
}

// Default 全局路由表
var Default = NewRegistry()

func init() {
	Default.Register(CourseDetail, "/courses/:slug")
}

// Register 注册或覆盖命名路由，pattern 使用 gin 的 :param / *param 语法
func (r *Registry) Register(name, pattern string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[name] = pattern
}

func (r *Registry) Pattern(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.routes[name]
	return p, ok
}

// Reverse 用参数填充命名路由模板
func (r *Registry) Reverse(name string, params Params) (string, error) {
	pattern, ok := r.Pattern(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoReverseMatch, name)
	}

	segments := strings.Split(pattern, "/")
	for i, seg := range segments {
		if seg == "" || (seg[0] != ':' && seg[0] != '*') {
			continue
		}
		key := seg[1:]
		value, ok := params[key]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %s requires %q", ErrMissingParam, name, key)
		}
		if seg[0] == '*' {
			// 通配参数保留路径分隔符
			parts := strings.Split(strings.TrimPrefix(value, "/"), "/")
			for j, p := range parts {
				parts[j] = url.PathEscape(p)
			}
			segments[i] = strings.Join(parts, "/")
			continue
		}
		segments[i] = url.PathEscape(value)
	}
	return strings.Join(segments, "/"), nil
}

func Reverse(name string, params Params) (string, error) {
	return Default.Reverse(name, params)
}

// MustReverse 模板在启动时注册，反解失败说明代码有误
func MustReverse(name string, params Params) string {
	u, err := Default.Reverse(name, params)
	if err != nil {
		panic(err)
	}
	return u
}

func Path(name string) string {
	p, ok := Default.Pattern(name)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrNoReverseMatch, name))
	}
	return p
}
