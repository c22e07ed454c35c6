package storage

import (
	"context"
	"fmt"
	"time"

	"Sampler/core/audio"

	"github.com/minio/minio-go/v7"
)

// Clip is one playable object in a bucket.
type Clip struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Source is the catalog source string that plays this clip.
func (c Clip) Source(bucket string) string {
	return "minio://" + bucket + "/" + c.Key
}

// ListClips 列出存储桶中可播放的音频对象
func ListClips(ctx context.Context, client *minio.Client, bucket, prefix string) ([]Clip, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("检查存储桶是否存在失败: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("存储桶 %s 不存在", bucket)
	}

	var clips []Clip
	objectCh := client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("列出对象时出错: %w", object.Err)
		}
		if !audio.IsAudioFile(object.Key) {
			continue
		}
		clips = append(clips, Clip{Key: object.Key, Size: object.Size, LastModified: object.LastModified})
	}
	return clips, nil
}

// FormatSize renders a byte count for humans.
func FormatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
