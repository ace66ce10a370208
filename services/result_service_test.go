package services

import (
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newResultService(f *answerFixture) *ResultService {
	return NewResultService(f.db, nil, f.sessions, f.answers)
}

func TestComputeResultPendingUntilBothSidesFinish(t *testing.T) {
	f := newAnswerFixture(t)
	results := newResultService(f)

	if err := f.answers.SubmitAnswers(f.session.ID, f.userA.ID, fullSheet("x", "y")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	for _, viewer := range []uint{f.userA.ID, f.userB.ID} {
		result, ready, err := results.ComputeResult(f.session.ID, viewer)
		if err != nil {
			t.Fatalf("compute failed: %v", err)
		}
		if ready || result != nil {
			t.Fatalf("expected pending result while one side is missing answers")
		}
	}

	stored, err := f.sessions.GetSession(f.session.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.IsComplete {
		t.Fatal("pending session must not be marked complete")
	}
}

func TestComputeResultScoresSymmetricPair(t *testing.T) {
	f := newAnswerFixture(t)
	results := newResultService(f)

	// A answers x1..x10 and guesses y1..y10; B answers y1..y10 and guesses
	// x1..x10. Every guess matches the partner's answer on both sides.
	if err := f.answers.SubmitAnswers(f.session.ID, f.userA.ID, fullSheet("x", "y")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.answers.SubmitAnswers(f.session.ID, f.userB.ID, fullSheet("y", "x")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	resultA, ready, err := results.ComputeResult(f.session.ID, f.userA.ID)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if !ready {
		t.Fatal("expected complete result")
	}
	if resultA.CorrectCount != QuestionCount {
		t.Fatalf("expected %d correct for A, got %d", QuestionCount, resultA.CorrectCount)
	}
	if resultA.PartnerID != f.userB.ID || resultA.PartnerSeatNumber != f.userB.SeatNumber {
		t.Fatalf("unexpected partner in result: %+v", resultA)
	}
	if len(resultA.AnswerPairs) != QuestionCount {
		t.Fatalf("expected %d answer pairs, got %d", QuestionCount, len(resultA.AnswerPairs))
	}
	if resultA.AnswerPairs[0].ActualPartnerAnswer != "y1" {
		t.Fatalf("expected partner's answer in pair, got %q", resultA.AnswerPairs[0].ActualPartnerAnswer)
	}

	resultB, ready, err := results.ComputeResult(f.session.ID, f.userB.ID)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if !ready || resultB.CorrectCount != QuestionCount {
		t.Fatalf("expected symmetric %d/%d for B, got %+v", QuestionCount, QuestionCount, resultB)
	}

	// The first full computation finishes the pairing.
	stored, err := f.sessions.GetSession(f.session.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !stored.IsComplete {
		t.Fatal("expected session marked complete after scoring")
	}

	// A no-op resubmission must not regress the state.
	if err := f.answers.SubmitAnswers(f.session.ID, f.userA.ID, fullSheet("x", "y")); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	resultA, ready, err = results.ComputeResult(f.session.ID, f.userA.ID)
	if err != nil || !ready || resultA.CorrectCount != QuestionCount {
		t.Fatalf("expected stable complete result, got ready=%v err=%v", ready, err)
	}
}

func TestComputeResultUsesExactStringMatch(t *testing.T) {
	f := newAnswerFixture(t)
	results := newResultService(f)

	sheetA := fullSheet("x", "y")
	sheetA[0].PartnerGuess = "Y1" // case flip
	sheetA[1].PartnerGuess = "y  2" // interior whitespace
	if err := f.answers.SubmitAnswers(f.session.ID, f.userA.ID, sheetA); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.answers.SubmitAnswers(f.session.ID, f.userB.ID, fullSheet("y", "x")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	result, ready, err := results.ComputeResult(f.session.ID, f.userA.ID)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if !ready {
		t.Fatal("expected complete result")
	}
	if result.CorrectCount != QuestionCount-2 {
		t.Fatalf("expected byte-for-byte comparison to reject 2 guesses, got %d correct", result.CorrectCount)
	}
	if result.AnswerPairs[0].IsCorrect || result.AnswerPairs[1].IsCorrect {
		t.Fatal("expected case and whitespace variants to be wrong")
	}
	if !result.AnswerPairs[2].IsCorrect {
		t.Fatal("expected untouched guess to stay correct")
	}
}

func TestResubmissionInvalidatesCachedResult(t *testing.T) {
	db := newTestDB(t)
	rooms := NewRoomService(db)
	participants := NewParticipantService(db)
	sessions := NewSessionService(db)
	rdb := redis.NewClient(&redis.Options{Addr: miniredis.RunT(t).Addr()})
	answers := NewAnswerService(db, rdb, sessions)
	results := NewResultService(db, rdb, sessions, answers)

	room := newTestRoom(t, rooms, 24)
	userA, userB := seatPair(t, participants, room, 1, 2)
	session, err := sessions.GetOrCreate(room.ID, userA.ID, userB.ID)
	if err != nil {
		t.Fatalf("get or create failed: %v", err)
	}

	if err := answers.SubmitAnswers(session.ID, userA.ID, fullSheet("x", "y")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := answers.SubmitAnswers(session.ID, userB.ID, fullSheet("y", "x")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	result, ready, err := results.ComputeResult(session.ID, userA.ID)
	if err != nil || !ready || result.CorrectCount != QuestionCount {
		t.Fatalf("expected a cached perfect score, got ready=%v err=%v", ready, err)
	}

	// B changes an answer after the round finished. The cached result must
	// not outlive the row it was computed from.
	if _, err := answers.UpsertAnswer(session.ID, userB.ID, 1, "zzz", "x1"); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}

	result, ready, err = results.ComputeResult(session.ID, userA.ID)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	if !ready {
		t.Fatal("expected complete result")
	}
	if result.CorrectCount != QuestionCount-1 {
		t.Fatalf("expected the changed answer to cost one point, got %d", result.CorrectCount)
	}
	if result.AnswerPairs[0].ActualPartnerAnswer != "zzz" {
		t.Fatalf("expected the stored row to win over the cache, got %q", result.AnswerPairs[0].ActualPartnerAnswer)
	}
	if result.AnswerPairs[0].IsCorrect {
		t.Fatal("expected the stale guess to score wrong")
	}

	// B's own view sees their new answer too; their guess still matches A.
	resultB, ready, err := results.ComputeResult(session.ID, userB.ID)
	if err != nil || !ready {
		t.Fatalf("compute failed: ready=%v err=%v", ready, err)
	}
	if resultB.CorrectCount != QuestionCount {
		t.Fatalf("expected B's guesses unaffected, got %d", resultB.CorrectCount)
	}
	if resultB.AnswerPairs[0].MyAnswer != "zzz" {
		t.Fatalf("expected B's fresh answer in their view, got %q", resultB.AnswerPairs[0].MyAnswer)
	}
}

func TestComputeResultRejectsOutsider(t *testing.T) {
	f := newAnswerFixture(t)
	results := newResultService(f)

	participants := NewParticipantService(f.db)
	outsider, err := participants.Join(f.room, "C", 3)
	if err != nil {
		t.Fatalf("join failed: %v", err)
	}

	if _, _, err := results.ComputeResult(f.session.ID, outsider.ID); !errors.Is(err, ErrNotParticipant) {
		t.Fatalf("expected ErrNotParticipant, got %v", err)
	}
	if _, _, err := results.ComputeResult(9999, f.userA.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSummarizeReturnsRowPerParticipant(t *testing.T) {
	f := newAnswerFixture(t)
	results := newResultService(f)

	rows, err := results.Summarize(f.room.ID)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows before any pairing finishes, got %d", len(rows))
	}

	if err := f.answers.SubmitAnswers(f.session.ID, f.userA.ID, fullSheet("x", "y")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if err := f.answers.SubmitAnswers(f.session.ID, f.userB.ID, fullSheet("y", "x")); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if _, _, err := results.ComputeResult(f.session.ID, f.userA.ID); err != nil {
		t.Fatalf("compute failed: %v", err)
	}

	rows, err = results.Summarize(f.room.ID)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected one row per participant, got %d", len(rows))
	}
	if rows[0].SeatNumber != f.userA.SeatNumber || rows[1].SeatNumber != f.userB.SeatNumber {
		t.Fatalf("expected seat-ascending order, got seats %d then %d", rows[0].SeatNumber, rows[1].SeatNumber)
	}
	for _, row := range rows {
		if row.CorrectCount != QuestionCount || row.TotalQuestions != QuestionCount {
			t.Fatalf("expected %d/%d score, got %+v", QuestionCount, QuestionCount, row)
		}
	}

	if _, err := results.Summarize(9999); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}
