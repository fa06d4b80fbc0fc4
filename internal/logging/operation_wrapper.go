package logging

import (
	"context"

	"github.com/sirupsen/logrus"
)

// OperationWrapper wraps a unit of work with start/complete/error logging
// and a duration timing. Queue workers and maintenance runs use it so every
// operation logs the same shape.
func OperationWrapper(
	loggingName string,
	log *logrus.Logger,
	operation func(ctx context.Context, data *LogData) error,
) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		logData := NewLogData(log)
		log.Infof("Operation.%v.Start", loggingName)

		endTimer := logData.AddTiming("duration")
		err := operation(ctx, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Operation.%v.Error", loggingName)
			return err
		}

		logData.Log().Infof("Operation.%v.Complete", loggingName)
		return nil
	}
}
