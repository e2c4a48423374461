package answer

import (
	"fmt"
	"strings"
)

const analysisSystemPrompt = "당신은 JSON만 출력하는 분석기입니다. 어떤 경우에도 유효한 JSON 객체만 반환하세요."

// buildPrompt renders the Korean analysis prompt, grounded on
// app/answer/openai_answer_analyzer.py's _build_prompt. The schema and
// instructions are reproduced verbatim; only the interpolated fields
// change per request.
func buildPrompt(req AnalysisRequest) string {
	tagsLine := "없음"
	if len(req.QuestionTags) > 0 {
		tagsLine = strings.Join(req.QuestionTags, ", ")
	}
	tone := req.QuestionTone
	if tone == "" {
		tone = "미지정"
	}

	return fmt.Sprintf(`
당신은 가족 대화 답변을 정량/정성적으로 분석하는 전문가입니다.
다음 JSON 스키마로만 출력하세요(불필요한 텍스트 금지). 반드시 유효한 JSON 객체 1개만 출력하세요.

입력 정보:
- 언어: %s
- 질문 카테고리: %s
- 질문 태그: %s
- 질문 톤: %s
- 질문: %s
- 답변: %s

출력(JSON) 스키마:
{
  "summary": "string",
  "categories": ["string"],
  "scores": {
    "sentiment": -1.0_to_1.0,
    "emotion": {"joy": 0_to_1, "sadness": 0_to_1, "anger": 0_to_1, "fear": 0_to_1, "neutral": 0_to_1},
    "relevance_to_question": 0_to_1,
    "relevance_to_category": 0_to_1,
    "toxicity": 0_to_1,
    "length": int,
    "keywords": ["string"]
  }
}

지침:
1) 질문/카테고리/태그/톤 맥락에 맞춰 분석하세요.
2) 한국어로 간결히 요약(summary) 작성.
3) JSON 외의 텍스트를 출력하지 마세요.
4) 형식/스케일 제약을 지키세요:
   - sentiment는 답변의 감정 표현을 기반으로 -1.0(극부정) ~ 1.0(극긍정) 범위, 소수 둘째자리로 반올림.
   - emotion.joy/sadness/anger/fear/neutral, relevance_to_* , toxicity는 0~1 범위, 소수 둘째자리로 반올림.
   - length는 0 이상 정수.
   - categories/keywords는 문자열 배열.
   - 지정 키 이외의 필드는 추가하지 마세요.
`, req.Language, req.QuestionCategory, tagsLine, tone, req.QuestionContent, req.AnswerText)
}
