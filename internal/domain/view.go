package domain

import (
	"sort"
)

// ViewOptions 列表视图的过滤选项
// IsPinned / IsArchived 为 nil 时不参与过滤
// ExcludeArchived 仅在未显式指定 IsArchived 时生效
type ViewOptions struct {
	IsPinned        *bool
	IsArchived      *bool
	ExcludeArchived bool
	SearchTerm      string
}

// DefaultViewOptions 缺省视图：排除已归档笔记
func DefaultViewOptions() ViewOptions {
	return ViewOptions{ExcludeArchived: true}
}

// SortNotes 返回排序后的新切片：置顶笔记优先，组内按修改时间倒序
// 稳定排序，其余并列情况保持输入顺序
func SortNotes(notes []*Note) []*Note {
	sorted := make([]*Note, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsPinned != b.IsPinned {
			return a.IsPinned
		}
		return a.UpdatedAt.Time().After(b.UpdatedAt.Time())
	})
	return sorted
}

// FilteredView 依次应用置顶过滤、归档过滤、关键词匹配，最后排序
func FilteredView(notes []*Note, opts ViewOptions) []*Note {
	filtered := make([]*Note, 0, len(notes))
	for _, n := range notes {
		if opts.IsPinned != nil && n.IsPinned != *opts.IsPinned {
			continue
		}
		if opts.IsArchived != nil {
			if n.IsArchived != *opts.IsArchived {
				continue
			}
		} else if opts.ExcludeArchived && n.IsArchived {
			continue
		}
		if !n.MatchesSearch(opts.SearchTerm) {
			continue
		}
		filtered = append(filtered, n)
	}
	return SortNotes(filtered)
}
