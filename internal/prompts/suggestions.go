package prompts

import (
	"fmt"
	"strings"

	"choicefiction/internal/models"
)

// BuildChapterContext собирает контекст главы из тела запроса.
// Номер текущей главы по умолчанию 1, состояние персонажа берется из профиля.
func BuildChapterContext(req models.GenerateSuggestionsRequest) models.ChapterContext {
	ctx := models.ChapterContext{
		CurrentChapter: models.CurrentChapter{Content: req.Content, Sequence: 1},
	}
	if req.Character != nil {
		ctx.CharacterState = models.CharacterState{Name: req.Character.Name, Stats: req.Character.Stats}
	}

	in := req.ChapterContext
	if in == nil {
		return ctx
	}
	if in.CurrentChapter.Sequence > 0 {
		ctx.CurrentChapter.Sequence = in.CurrentChapter.Sequence
	}
	if in.PreviousChapter != nil {
		prev := *in.PreviousChapter
		ctx.PreviousChapter = &prev
	}
	ctx.CharacterState.CurrentStatus = in.CharacterState.CurrentStatus
	if in.StorySummary != nil {
		summary := *in.StorySummary
		ctx.StorySummary = &summary
	}
	return ctx
}

// BuildSuggestionsPrompt собирает запрос на три варианта продолжения главы.
func BuildSuggestionsPrompt(req models.GenerateSuggestionsRequest, chapterCtx models.ChapterContext) string {
	genre := req.Genre.String()
	var character models.CharacterProfile
	if req.Character != nil {
		character = *req.Character
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "소설제목: %s\n", req.Title)
	fmt.Fprintf(&sb, "장르: %s\n", genre)
	fmt.Fprintf(&sb, "소설 소개: %s\n", req.Preview)
	fmt.Fprintf(&sb, "이전 내용: %s\n\n", orDefault(req.Content, "없음"))

	fmt.Fprintf(&sb, "너는 전도유망한 %s 소설가야. %s의 대표적인 소설들을 탐독하며 %s 소설 쓰는 법을 공부했고 "+
		"벌써 12권짜리 시리즈도 성공적으로 연재한 작가지. 그런 네가 이제 %s 소설의 이후 내용을 집필하려고 해.\n\n",
		genre, genre, genre, req.Title)

	sb.WriteString("제안 내용은 반드시 다음 내용을 참고해서 작성해줘.\n")
	fmt.Fprintf(&sb, "1. 캐릭터 이름: %s\n", character.Name)
	fmt.Fprintf(&sb, "2. 캐릭터 성격: %s\n", character.Personality)
	fmt.Fprintf(&sb, "3. 캐릭터 외모: %s\n", character.Appearance)
	fmt.Fprintf(&sb, "4. 캐릭터 역할: %s\n", character.Role)
	fmt.Fprintf(&sb, "5. 캐릭터 배경 스토리: %s\n", character.Background)
	sb.WriteString("6. 캐릭터 스텟:\n")
	writeStats(&sb, character.Stats, "   - ")

	writeChapterContext(&sb, chapterCtx)

	sb.WriteString("\n조건:\n")
	sb.WriteString("1. 내용의 흐름은 이전 내용과 이어져서 매우 자연스러워야 해.\n")
	sb.WriteString("2. 이전 내용이 '없음' 이면 소설의 첫 내용을 작성해줘.\n")
	sb.WriteString("3. 소설의 첫 내용을 작성하는 경우는 프롤로그부터 작성해주고 각 제안마다 3문단으로 작성해줘. (세계관, 등장인물, 배경 설정 등)\n")
	sb.WriteString("4. 등장인물들간의 대화 내용도 한국 웹소설 작가가 쓰는 것처럼 자연스럽게 작성해줘.\n")
	sb.WriteString("5. 대화 내용을 작성할 때는 이름: 대화 내용 형식으로 작성해줘.\n")
	sb.WriteString("ex) 사람1: 사람2야 안녕 나는 사람1이야. 사람2: 응 안녕 사람1아 잘 지냈어?\n\n")

	sb.WriteString("다시말하지만 너는 전도유망한 웹소설 작가이고 나한테 소설의 내용을 제안해주는거야.\n")
	sb.WriteString("소설 내용은 suggestions 배열에 서로 다른 선택지의 3개의 제안을 넣어서 제공해주고, 제안 내용은 각각 3문단으로 작성해줘. ")
	sb.WriteString("그 중 하나의 선택지를 내가 선택할거야.\n")
	sb.WriteString("응답은 반드시 다음과 같은 JSON 형식이어야 해.\n")
	sb.WriteString("{\n  \"suggestions\": [\"\", \"\", \"\"],\n  \"chapter_summary\": {\n    \"keyEvents\": [],\n    \"characterDevelopment\": []\n  }\n}\n")

	return sb.String()
}

func writeChapterContext(sb *strings.Builder, c models.ChapterContext) {
	fmt.Fprintf(sb, "\n현재 챕터: %d화\n", c.CurrentChapter.Sequence)

	if p := c.PreviousChapter; p != nil {
		fmt.Fprintf(sb, "이전 챕터 요약: %s\n", p.Summary)
		writeList(sb, "이전 챕터 주요 사건", p.KeyEvents)
	}
	writeList(sb, "캐릭터 현재 상태", c.CharacterState.CurrentStatus)
	if s := c.StorySummary; s != nil {
		writeList(sb, "지금까지의 주요 사건", s.MainEvents)
		writeList(sb, "세계관 설정", s.WorldSettings)
	}
}

func writeList(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
}
