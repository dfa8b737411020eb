// Package storage uploads media to the configured object store and removes
// it again by public id.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Kind string

const (
	KindVideo Kind = "video"
	KindImage Kind = "image"
)

// Object 上传结果，PublicID 即对象 key
type Object struct {
	URL      string
	PublicID string
	Duration float64
}

type Store interface {
	Upload(ctx context.Context, localPath, key, contentType string) (*Object, error)
	Delete(ctx context.Context, publicID string, kind Kind) error
}

var ErrForeignObject = errors.New("storage: object does not belong to this store")

// ObjectKey <folder>/<kind>/<yyyy/mm/dd>/<name><ext>
func ObjectKey(folder string, kind Kind, name, ext string, now time.Time) string {
	return path.Join(folder, string(kind), now.Format("2006/01/02"), name+ext)
}

// checkKey 只允许删除本服务按 kind 写入的对象
func checkKey(folder, publicID string, kind Kind) error {
	prefix := path.Join(folder, string(kind)) + "/"
	if publicID == "" || !strings.HasPrefix(publicID, prefix) || strings.Contains(publicID, "..") {
		return errors.Wrapf(ErrForeignObject, "%s is not a %s object", publicID, kind)
	}
	return nil
}

func joinURL(base, key string) string {
	return fmt.Sprintf("%s/%s", strings.TrimRight(base, "/"), key)
}
