package steps

import (
	"context"
	"essensys-server/internal/conformance"
)

func (fc *FeatureContext) iRunTheConformanceChecker(ctx context.Context) error {
	fc.report = conformance.NewChecker(fc.driver).Run(ctx)
	return nil
}

func (fc *FeatureContext) everyConformanceStepShouldPass() error {
	fc.require.NoError(fc.report.Err())
	fc.require.True(fc.report.Passed())
	fc.require.Len(fc.report.Steps, len(conformance.Steps()))
	return nil
}
