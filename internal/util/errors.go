package util

import "errors"

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrCategoryNotFound      = errors.New("分类不存在")
	ErrCourseNotFound        = errors.New("课程不存在")
	ErrLessonNotFound        = errors.New("课时不存在")
	ErrLessonContentNotFound = errors.New("课时内容不存在")
	ErrInstructorNotFound    = errors.New("讲师不存在")
	ErrInvalidSlug           = errors.New("slug 只能包含字母、数字、下划线和连字符")
	ErrInvalidTitle          = errors.New("标题不能为空且不超过250个字符")
	ErrInvalidCategoryName   = errors.New("分类名称不能为空且不超过20个字符")
	ErrSlugExhausted         = errors.New("unable to allocate unique slug")
	ErrSlugImmutable         = errors.New("slug 创建后不可修改")
	ErrInvalidVideoLink      = errors.New("视频链接必须是 http(s) 地址且不超过500个字符")
	ErrInvalidThumbnail      = errors.New("缩略图必须是图片文件")
	ErrThumbnailTooLarge     = errors.New("缩略图文件过大")
	ErrInvalidRatingScore    = errors.New("评分必须在1到5之间")
	ErrInvalidPrice          = errors.New("价格必须是非负数")
	ErrInvalidLanguage       = errors.New("语言不超过50个字符")
	ErrInvalidFilter         = errors.New("筛选参数无效")
)

var validationErrors = []error{
	ErrInvalidSlug,
	ErrSlugImmutable,
	ErrInvalidTitle,
	ErrInvalidCategoryName,
	ErrInvalidVideoLink,
	ErrInvalidThumbnail,
	ErrThumbnailTooLarge,
	ErrInvalidRatingScore,
	ErrInvalidPrice,
	ErrInvalidLanguage,
	ErrInvalidFilter,
}

// IsValidationError 请求参数校验类错误，对应 400
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound 资源不存在类错误，对应 404
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrLessonContentNotFound)
}
