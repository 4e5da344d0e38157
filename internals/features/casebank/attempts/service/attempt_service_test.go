package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	caseModel "praktikum_backend/internals/features/casebank/cases/model"
)

func TestTimeLeft(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 600, TimeLeft(start, 600, start))
	assert.Equal(t, 300, TimeLeft(start, 600, start.Add(5*time.Minute)))
	assert.Equal(t, 0, TimeLeft(start, 600, start.Add(10*time.Minute)))
	// lewat deadline: 0, bukan negatif
	assert.Equal(t, 0, TimeLeft(start, 600, start.Add(1*time.Hour)))
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 50.0, Percentage(2.5, 5))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 0.0, Percentage(0, 5))
	// maxScore 0 → 0, bukan NaN
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 0.0, Percentage(3, 0))
}

func TestSnapshotOrder(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	snap := SnapshotOrder(ids, true)
	require.Len(t, snap, len(ids))
	assert.ElementsMatch(t, ids, snap, "snapshot harus permutasi dari id asli")

	// tanpa shuffle urutan dipertahankan, dan source tidak di-mutate
	plain := SnapshotOrder(ids, false)
	assert.Equal(t, ids, plain)
	plain[0] = uuid.New()
	assert.NotEqual(t, ids[0], plain[0])
}

func TestNewAttemptToken(t *testing.T) {
	a, err := NewAttemptToken()
	require.NoError(t, err)
	b, err := NewAttemptToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func gradingFixture() ([]caseModel.QuestionModel, map[uuid.UUID][]caseModel.AnswerModel) {
	mc := caseModel.QuestionModel{
		QuestionID:          uuid.New(),
		QuestionType:        caseModel.QuestionMultichoice,
		QuestionDefaultMark: 2,
	}
	tf := caseModel.QuestionModel{
		QuestionID:          uuid.New(),
		QuestionType:        caseModel.QuestionTrueFalse,
		QuestionDefaultMark: 1,
	}
	sa := caseModel.QuestionModel{
		QuestionID:          uuid.New(),
		QuestionType:        caseModel.QuestionShortAnswer,
		QuestionDefaultMark: 1,
	}
	essay := caseModel.QuestionModel{
		QuestionID:          uuid.New(),
		QuestionType:        caseModel.QuestionEssay,
		QuestionDefaultMark: 5,
	}

	mcRight := caseModel.AnswerModel{AnswerID: uuid.New(), AnswerQuestionID: mc.QuestionID, AnswerFraction: 1}
	mcWrong := caseModel.AnswerModel{AnswerID: uuid.New(), AnswerQuestionID: mc.QuestionID, AnswerFraction: 0}
	tfTrue := caseModel.AnswerModel{AnswerID: uuid.New(), AnswerQuestionID: tf.QuestionID, AnswerFraction: 1}
	tfFalse := caseModel.AnswerModel{AnswerID: uuid.New(), AnswerQuestionID: tf.QuestionID, AnswerFraction: 0}
	saAns := caseModel.AnswerModel{AnswerID: uuid.New(), AnswerQuestionID: sa.QuestionID, AnswerText: "Jakarta", AnswerFraction: 1}

	answers := map[uuid.UUID][]caseModel.AnswerModel{
		mc.QuestionID: {mcRight, mcWrong},
		tf.QuestionID: {tfTrue, tfFalse},
		sa.QuestionID: {saAns},
	}
	return []caseModel.QuestionModel{mc, tf, sa, essay}, answers
}

func TestGradeResponsesAllCorrect(t *testing.T) {
	questions, answers := gradingFixture()
	mc, tf, sa := questions[0], questions[1], questions[2]

	responses := map[string]any{
		mc.QuestionID.String(): answers[mc.QuestionID][0].AnswerID.String(),
		tf.QuestionID.String(): answers[tf.QuestionID][0].AnswerID.String(),
		sa.QuestionID.String(): "  jakarta ", // normalisasi case + spasi
	}

	score, maxScore := GradeResponses(questions, answers, responses)
	// essay tidak ikut: max = 2 + 1 + 1
	assert.Equal(t, 4.0, maxScore)
	assert.Equal(t, 4.0, score)
}

func TestGradeResponsesPartial(t *testing.T) {
	questions, answers := gradingFixture()
	mc, tf, sa := questions[0], questions[1], questions[2]

	responses := map[string]any{
		mc.QuestionID.String(): answers[mc.QuestionID][1].AnswerID.String(), // salah
		tf.QuestionID.String(): answers[tf.QuestionID][0].AnswerID.String(), // benar
		sa.QuestionID.String(): "Bandung",                                   // salah
	}

	score, maxScore := GradeResponses(questions, answers, responses)
	assert.Equal(t, 4.0, maxScore)
	assert.Equal(t, 1.0, score)
}

func TestGradeResponsesUnanswered(t *testing.T) {
	questions, answers := gradingFixture()

	score, maxScore := GradeResponses(questions, answers, map[string]any{})
	assert.Equal(t, 4.0, maxScore)
	assert.Equal(t, 0.0, score)
}

func TestGradeResponsesMultiAnswerClamped(t *testing.T) {
	q := caseModel.QuestionModel{
		QuestionID:           uuid.New(),
		QuestionType:         caseModel.QuestionMultichoice,
		QuestionSingleAnswer: false,
		QuestionDefaultMark:  2,
	}
	a1 := caseModel.AnswerModel{AnswerID: uuid.New(), AnswerQuestionID: q.QuestionID, AnswerFraction: 0.6}
	a2 := caseModel.AnswerModel{AnswerID: uuid.New(), AnswerQuestionID: q.QuestionID, AnswerFraction: 0.6}
	answers := map[uuid.UUID][]caseModel.AnswerModel{q.QuestionID: {a1, a2}}

	responses := map[string]any{
		q.QuestionID.String(): []any{a1.AnswerID.String(), a2.AnswerID.String()},
	}

	score, maxScore := GradeResponses([]caseModel.QuestionModel{q}, answers, responses)
	assert.Equal(t, 2.0, maxScore)
	// 0.6 + 0.6 = 1.2 → clamp ke 1.0
	assert.Equal(t, 2.0, score)
}

func TestGradeResponsesIgnoresUnknownAnswer(t *testing.T) {
	questions, answers := gradingFixture()
	mc := questions[0]

	responses := map[string]any{
		mc.QuestionID.String(): uuid.New().String(), // answer id asing
	}

	score, _ := GradeResponses(questions, answers, responses)
	assert.Equal(t, 0.0, score)
}
