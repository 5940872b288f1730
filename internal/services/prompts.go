package services

import (
	"fmt"
	"strings"
)

func buildQuestionsPrompt(jobRole, resumeExcerpt string, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Based on this resume, generate exactly %d interview questions for a %s position.\n\n", count, jobRole)
	b.WriteString("Resume:\n")
	b.WriteString(resumeExcerpt)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Generate %d specific questions about their projects, skills, and experience. Return ONLY the numbered questions:\n\n", count)
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&b, "%d. [Question %d]\n", i, i)
	}

	return strings.TrimRight(b.String(), "\n")
}

func buildEvaluationPrompt(question, answer string) string {
	return fmt.Sprintf(`You are interviewing a candidate. Evaluate their answer and ask the next question.

Question asked: %s
Candidate's answer: %s

Provide exactly this format:

SCORE: [Give a score from 1-10]

FEEDBACK: [Give 1-2 sentences of constructive feedback]

NEXT_QUESTION: [Ask one relevant follow-up question or move to a new topic]

Do not add anything else. Stop after NEXT_QUESTION.`, question, answer)
}

func buildSummaryPrompt(jobRole string, questionsAsked int, conversation string) string {
	return fmt.Sprintf(`The interview is ending. Provide a professional summary.

Interview context:
- Position: %s
- Questions discussed: %d

Recent conversation:
%s

Write a warm, professional closing message (3-4 sentences) that:
1. Thanks the candidate
2. Gives brief positive assessment
3. Mentions next steps
4. Ends encouragingly

Write in paragraph form, not bullet points.`, jobRole, questionsAsked, conversation)
}
