package prompts

import (
	"strings"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
)

// BuildLegacyPrompt は旧形式フレームのプロンプトを返します。
// parameters が本文にまだ含まれていなければ、空白区切りで末尾に付け足すのだ。
func BuildLegacyPrompt(f domain.LegacyFrame) string {
	prompt := strings.TrimSpace(f.Prompt)
	params := strings.TrimSpace(f.Parameters)
	if params == "" || strings.Contains(prompt, params) {
		return prompt
	}
	if prompt == "" {
		return params
	}
	return prompt + parameterSeparator + params
}
