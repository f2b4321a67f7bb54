package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	dErrors "perf-service/pkg/domain-errors"
)

type SessionSuite struct {
	suite.Suite
	athleteID uuid.UUID
	start     time.Time
}

func TestSessionSuite(t *testing.T) {
	suite.Run(t, new(SessionSuite))
}

func (s *SessionSuite) SetupTest() {
	s.athleteID = uuid.New()
	s.start = time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
}

func (s *SessionSuite) TestStart() {
	s.Run("opens a session without end time or score", func() {
		sess, err := Start(s.athleteID, nil, s.start)
		s.Require().NoError(err)
		s.Equal(s.athleteID, sess.AthleteID)
		s.Nil(sess.EndTime)
		s.Nil(sess.RPEScore)
		s.Nil(sess.RoutineAssignmentID)
		s.False(sess.Finalized())
	})

	s.Run("keeps the routine assignment when provided", func() {
		routineID := uuid.New()
		sess, err := Start(s.athleteID, &routineID, s.start)
		s.Require().NoError(err)
		s.Require().NotNil(sess.RoutineAssignmentID)
		s.Equal(routineID, *sess.RoutineAssignmentID)
	})

	s.Run("requires an athlete", func() {
		_, err := Start(uuid.Nil, nil, s.start)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("requires a start time", func() {
		_, err := Start(s.athleteID, nil, time.Time{})
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func (s *SessionSuite) TestFinalize() {
	end := s.start.Add(time.Hour)
	score := func(n int) *int { return &n }

	s.Run("closes the session with score and metrics", func() {
		sess, err := Start(s.athleteID, nil, s.start)
		s.Require().NoError(err)

		err = sess.Finalize(end, score(7), []MetricInput{{Type: "distance_run", Value: "5", Unit: "km"}})
		s.Require().NoError(err)
		s.True(sess.Finalized())
		s.Equal(7, *sess.RPEScore)
		s.Require().Len(sess.Metrics, 1)
		s.Equal("distance_run", sess.Metrics[0].Type)
		s.Equal(end, sess.Metrics[0].MeasuredAt)
	})

	s.Run("score stays optional", func() {
		sess, err := Start(s.athleteID, nil, s.start)
		s.Require().NoError(err)

		s.Require().NoError(sess.Finalize(end, nil, nil))
		s.True(sess.Finalized())
		s.Nil(sess.RPEScore)
	})

	s.Run("rejects a second finalize", func() {
		sess, err := Start(s.athleteID, nil, s.start)
		s.Require().NoError(err)
		s.Require().NoError(sess.Finalize(end, score(6), nil))

		err = sess.Finalize(end.Add(time.Minute), score(6), nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("rejects an end time before the start", func() {
		sess, err := Start(s.athleteID, nil, s.start)
		s.Require().NoError(err)

		err = sess.Finalize(s.start.Add(-time.Second), score(6), nil)
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("accepts the score boundaries and rejects beyond them", func() {
		for _, n := range []int{1, 10} {
			sess, err := Start(s.athleteID, nil, s.start)
			s.Require().NoError(err)
			s.NoError(sess.Finalize(end, score(n), nil))
		}
		for _, n := range []int{0, 11} {
			sess, err := Start(s.athleteID, nil, s.start)
			s.Require().NoError(err)
			err = sess.Finalize(end, score(n), nil)
			s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		}
	})

	s.Run("an invalid metric aborts the finalize", func() {
		sess, err := Start(s.athleteID, nil, s.start)
		s.Require().NoError(err)

		err = sess.Finalize(end, score(6), []MetricInput{{Type: "", Value: "5", Unit: "km"}})
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.False(sess.Finalized())
	})
}

func (s *SessionSuite) TestNewMetric() {
	now := time.Now()

	s.Run("valid metric", func() {
		m, err := NewMetric("bag_strikes", "150", "strikes", now)
		s.Require().NoError(err)
		s.NotEqual(uuid.Nil, m.ID)
		s.Equal("150", m.Value)
	})

	s.Run("empty fields rejected", func() {
		cases := []MetricInput{
			{Type: "", Value: "1", Unit: "km"},
			{Type: "t", Value: "", Unit: "km"},
			{Type: "t", Value: "1", Unit: ""},
		}
		for _, c := range cases {
			_, err := NewMetric(c.Type, c.Value, c.Unit, now)
			s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		}
	})
}
