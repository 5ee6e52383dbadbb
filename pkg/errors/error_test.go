package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNew() {
	err := New(ErrCodeEmptySeries, "series is empty")
	suite.Equal(ErrCodeEmptySeries, err.Code)
	suite.Equal("series is empty", err.Message)
	suite.Nil(err.Cause)
	suite.Equal("[200] series is empty", err.Error())
}

func (suite *ErrorTestSuite) TestNewf() {
	err := Newf(ErrCodeDataNotFound, "no data for symbol %s", "AAPL")
	suite.Equal("[204] no data for symbol AAPL", err.Error())
}

func (suite *ErrorTestSuite) TestWrap() {
	cause := fmt.Errorf("disk read failed")
	err := Wrap(ErrCodeQueryFailed, "failed to execute query", cause)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal(cause, err.Unwrap())
	suite.Contains(err.Error(), "disk read failed")
}

func (suite *ErrorTestSuite) TestGetCode() {
	tests := []struct {
		name     string
		err      error
		expected ErrorCode
	}{
		{"typed error", New(ErrCodeInvalidPeriod, "bad period"), ErrCodeInvalidPeriod},
		{"wrapped typed error", fmt.Errorf("outer: %w", New(ErrCodeInvalidCapital, "bad capital")), ErrCodeInvalidCapital},
		{"plain error", fmt.Errorf("plain"), ErrCodeUnknown},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.Equal(tc.expected, GetCode(tc.err))
		})
	}
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeNonChronologicalData, "out of order")
	suite.True(HasCode(err, ErrCodeNonChronologicalData))
	suite.False(HasCode(err, ErrCodeEmptySeries))
}

func (suite *ErrorTestSuite) TestCategoryHelpers() {
	suite.True(IsConfigError(New(ErrCodeInvalidThreshold, "bad threshold")))
	suite.True(IsConfigError(New(ErrCodeStrategyConfigError, "bad strategy params")))
	suite.False(IsConfigError(New(ErrCodeDuplicateTimestamp, "dup")))

	suite.True(IsInputError(New(ErrCodeDuplicateTimestamp, "dup")))
	suite.False(IsInputError(New(ErrCodeInvalidRate, "bad rate")))
}
