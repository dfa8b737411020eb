// Package upload stages multipart files on local disk and enforces the
// per-field size and type constraints before anything reaches the media store.
package upload

import (
	"Streamify/config"
	"Streamify/pkg/response"
	"Streamify/pkg/storage"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp"
)

const (
	// FilePrefix 暂存文件名前缀，清理任务只处理带该前缀的文件
	FilePrefix = "streamify-"
	// FormOverhead multipart 边界与文本字段的额外余量
	FormOverhead int64 = 1 << 20
)

var (
	VideoTypes = []string{"video/mp4", "video/webm", "video/quicktime", "video/x-matroska"}
	ImageTypes = []string{"image/jpeg", "image/png", "image/webp"}
)

// Rule 单个表单字段的约束
type Rule struct {
	Field    string
	Kind     storage.Kind
	Required bool
	MaxSize  int64 // 字节
	Allowed  []string
}

// File 已落盘的暂存文件
type File struct {
	Field       string
	Kind        storage.Kind
	Path        string
	ContentType string
	Ext         string
	Size        int64
}

// Files 按字段名索引
type Files map[string]*File

// Cleanup 删除所有暂存文件，可重复调用
func (fs Files) Cleanup() {
	for _, f := range fs {
		f.Remove()
	}
}

func (f *File) Remove() {
	if f == nil || f.Path == "" {
		return
	}
	_ = os.Remove(f.Path)
}

type Stager struct {
	dir      string
	maxVideo int64
	maxImage int64
}

func NewStager(cfg *config.Upload) *Stager {
	return &Stager{
		dir:      cfg.TempDir,
		maxVideo: cfg.MaxVideoSize << 20,
		maxImage: cfg.MaxImageSize << 20,
	}
}

func (s *Stager) Dir() string {
	return s.dir
}

func (s *Stager) Video(field string, required bool) Rule {
	return Rule{Field: field, Kind: storage.KindVideo, Required: required, MaxSize: s.maxVideo, Allowed: VideoTypes}
}

func (s *Stager) Image(field string, required bool) Rule {
	return Rule{Field: field, Kind: storage.KindImage, Required: required, MaxSize: s.maxImage, Allowed: ImageTypes}
}

// BodyLimit 一次 multipart 请求允许的最大字节数
func BodyLimit(rules ...Rule) int64 {
	limit := FormOverhead
	for _, rule := range rules {
		limit += rule.MaxSize
	}
	return limit
}

// Stage 按规则校验并落盘；任何一个字段失败都会清理已落盘的文件
func (s *Stager) Stage(form *multipart.Form, rules ...Rule) (Files, error) {
	files := Files{}
	for _, rule := range rules {
		var headers []*multipart.FileHeader
		if form != nil {
			headers = form.File[rule.Field]
		}
		if len(headers) == 0 {
			if rule.Required {
				files.Cleanup()
				return nil, response.Validation("%s is required", rule.Field)
			}
			continue
		}
		if len(headers) > 1 {
			files.Cleanup()
			return nil, response.FileConstraint("only one file is allowed for %s", rule.Field)
		}

		f, err := s.stageOne(headers[0], rule)
		if err != nil {
			files.Cleanup()
			return nil, err
		}
		files[rule.Field] = f
	}
	return files, nil
}

func (s *Stager) stageOne(h *multipart.FileHeader, rule Rule) (*File, error) {
	// header.Size 不可信，但可做第一道拦截
	if h.Size > rule.MaxSize {
		return nil, tooLarge(rule)
	}

	src, err := h.Open()
	if err != nil {
		return nil, errors.WithMessage(err, "open multipart file")
	}
	defer src.Close()

	dst, err := os.CreateTemp(s.dir, FilePrefix+uuid.NewString()+"-*")
	if err != nil {
		return nil, errors.WithMessage(err, "create temp file")
	}
	f := &File{Field: rule.Field, Kind: rule.Kind, Path: dst.Name()}

	n, err := io.Copy(dst, io.LimitReader(src, rule.MaxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		f.Remove()
		return nil, errors.WithMessage(err, "write temp file")
	}
	if n > rule.MaxSize {
		f.Remove()
		return nil, tooLarge(rule)
	}
	f.Size = n

	if err := f.sniff(rule); err != nil {
		f.Remove()
		return nil, err
	}
	return f, nil
}

func (f *File) sniff(rule Rule) error {
	mt, err := mimetype.DetectFile(f.Path)
	if err != nil {
		return errors.WithMessage(err, "detect file type")
	}
	if !mimetype.EqualsAny(mt.String(), rule.Allowed...) {
		return response.FileConstraint("%s must be one of %s, got %s",
			rule.Field, strings.Join(rule.Allowed, ", "), mt.String())
	}
	f.ContentType = mt.String()
	f.Ext = mt.Extension()

	if rule.Kind == storage.KindImage {
		r, err := os.Open(f.Path)
		if err != nil {
			return errors.WithMessage(err, "open temp file")
		}
		defer r.Close()
		if _, _, err := image.DecodeConfig(r); err != nil {
			return response.FileConstraint("%s is not a valid image", rule.Field)
		}
	}
	return nil
}

func tooLarge(rule Rule) error {
	return response.FileConstraint("%s exceeds the maximum size of %d MB", rule.Field, rule.MaxSize>>20)
}

// Sweep 删除 dir 下超过 ttl 未清理的暂存文件，返回删除数量
func Sweep(dir string, ttl time.Duration, now time.Time) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), FilePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < ttl {
			continue
		}
		if err := os.Remove(filepath.Join(dir, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
