package util

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
)

// ValidateMimeType 深度校验文件 MIME 类型
// allowedTypes: 允许的 MIME 前缀或完整类型，如 "image/"
func ValidateMimeType(reader io.Reader, allowedTypes []string) (string, error) {
	buffer := make([]byte, 512)
	n, err := reader.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}

	// 检测 MIME 类型
	mimeType := http.DetectContentType(buffer[:n])

	for _, allowed := range allowedTypes {
		if strings.HasPrefix(mimeType, allowed) || mimeType == allowed {
			return mimeType, nil
		}
	}

	return mimeType, errors.New("invalid file type: " + mimeType)
}

// IsImage 检测是否为图片
func IsImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// HasImageExtension 校验扩展名
func HasImageExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, e := range AllowedImageExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ValidateVideoLink 视频链接必须是绝对的 http(s) 地址
func ValidateVideoLink(link string) error {
	if link == "" || len(link) > MaxVideoLinkLength {
		return ErrInvalidVideoLink
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return ErrInvalidVideoLink
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidVideoLink
	}
	return nil
}
