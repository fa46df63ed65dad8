package prompts

import (
	"fmt"
	"strings"

	"choicefiction/internal/models"
)

// BuildStoryPromptsPrompt собирает запрос на три варианта завязки истории
// для персонажа и выбранных жанров.
func BuildStoryPromptsPrompt(character models.CharacterProfile, genre string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "당신은 현대 한국의 %s 장르를 완벽히 이해하는 웹소설 작가입니다.\n", genre)
	sb.WriteString("다음 캐릭터정보 장르를 기반으로 흥미로운 스토리 시작점 3가지를 제안해주세요.\n\n")

	sb.WriteString("특징:\n")
	sb.WriteString("- 장르와 장르의 크로스오버를 통한 신선한 설정\n")
	sb.WriteString("- 현대의 게임/웹툰/웹소설 문화를 반영한 메타적 요소\n")
	sb.WriteString("- 유쾌하고 재치있는 반전을 통한 몰입감 강화\n")
	fmt.Fprintf(&sb, "- 요즘 한국 %s 장르에 맞는 주제 선정\n", genre)
	sb.WriteString("- 제목은 요즘 웹툰, 웹소설 장르에 맞게 설정\n")
	sb.WriteString("- 제목에 캐릭터 이름이 들어가지 않을 것 ex) OOO의 모험, OOO의 선택 등\n")
	sb.WriteString("- 설명은 20~30대 독자가 흥미를 보일 수 있게끔 자극적으로 설정\n\n")

	sb.WriteString("절대 하지 말아야 할 것:\n")
	sb.WriteString("- 진부하고 뻔한 선택지 제시\n\n")

	sb.WriteString("캐릭터 정보:\n")
	fmt.Fprintf(&sb, "- 이름: %s\n", character.Name)
	fmt.Fprintf(&sb, "- 나이: %d세\n", character.Age)
	fmt.Fprintf(&sb, "- 성격: %s\n", orDefault(character.Personality, "미정"))
	sb.WriteString("- 주요 능력치:\n")
	writeStats(&sb, character.Stats, "  * ")

	sb.WriteString("\n각 제안은 다음 형식으로 작성해주세요:\n")
	sb.WriteString("{\n  \"title\": \"제목\",\n  \"description\": \"한 줄 설명\",\n  \"preview\": \"도입부 내용 (2-3문장)\"\n}\n\n")
	sb.WriteString("응답은 {\"prompts\": [...]} 형태의 JSON 객체 안에 배열로 해주세요.")

	return sb.String()
}

// statLabels - порядок и подписи характеристик в тексте запроса.
var statLabels = []struct {
	label string
	value func(models.Stats) int
}{
	{"외모", func(s models.Stats) int { return s.Appearance }},
	{"매력", func(s models.Stats) int { return s.Charisma }},
	{"말솜씨", func(s models.Stats) int { return s.Speech }},
	{"운", func(s models.Stats) int { return s.Luck }},
	{"지능", func(s models.Stats) int { return s.Wit }},
}

func writeStats(sb *strings.Builder, stats models.Stats, prefix string) {
	for _, l := range statLabels {
		fmt.Fprintf(sb, "%s%s: %d\n", prefix, l.label, l.value(stats))
	}
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
