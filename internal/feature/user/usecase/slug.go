package usecase

import "strings"

// Slugify は表示名を正規化したスラッグ（小文字・空白はハイフン区切り）に変換します。
// 冪等: スラッグを再度正規化しても同じ文字列になります。
func Slugify(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
