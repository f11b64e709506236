package parser

import (
	"errors"
	"fmt"

	"github.com/njnj4101989-sudo/flipkart-payments/internal/model"
)

// NormalizationWarning 清洗告警
type NormalizationWarning = model.NormalizationWarning

// 结构性错误类别
var (
	ErrMissingSheet       = errors.New("missing sheet")
	ErrInsufficientRows   = errors.New("insufficient rows")
	ErrInvalidOffset      = errors.New("invalid row offset")
	ErrMissingKeyColumn   = errors.New("missing key column")
	ErrUnreadableWorkbook = errors.New("unreadable workbook")
)

// MalformedTableError 上传文件结构不符合要求；仅影响本次上传
type MalformedTableError struct {
	Sheet  string
	Detail string
	Err    error
}

func (e *MalformedTableError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("malformed table: %v: %s", e.Err, e.Detail)
	}
	return fmt.Sprintf("malformed table %q: %v: %s", e.Sheet, e.Err, e.Detail)
}

func (e *MalformedTableError) Unwrap() error {
	return e.Err
}

// Malformed 构造结构性错误
func Malformed(sheet string, kind error, format string, args ...any) error {
	return &MalformedTableError{
		Sheet:  sheet,
		Detail: fmt.Sprintf(format, args...),
		Err:    kind,
	}
}

// IsStructural 判断是否为结构性错误
func IsStructural(err error) bool {
	var mte *MalformedTableError
	return errors.As(err, &mte)
}
