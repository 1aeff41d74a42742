// Package metrics records operational counters in CloudWatch.
package metrics

import (
	"context"

	"kernelworx-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
	"go.uber.org/zap"
)

const namespace = "KernelWorx/Backend"

// CloudWatchPublisher implements ports.MetricsPublisher. Failures are logged
// and dropped; a metrics outage must never fail a user operation.
type CloudWatchPublisher struct {
	client *cloudwatch.Client
	logger *zap.Logger
}

// NewCloudWatchPublisher creates a new CloudWatchPublisher.
func NewCloudWatchPublisher(client *cloudwatch.Client, logger *zap.Logger) ports.MetricsPublisher {
	return &CloudWatchPublisher{client: client, logger: logger}
}

// RecordCount emits one count datum.
func (p *CloudWatchPublisher) RecordCount(ctx context.Context, metricName string, value int, dimensions map[string]string) {
	dims := make([]types.Dimension, 0, len(dimensions))
	for name, val := range dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(name),
			Value: aws.String(val),
		})
	}

	_, err := p.client.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: aws.String(namespace),
		MetricData: []types.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Value:      aws.Float64(float64(value)),
				Unit:       types.StandardUnitCount,
				Dimensions: dims,
			},
		},
	})
	if err != nil {
		p.logger.Warn("failed to record metric",
			zap.String("metric", metricName),
			zap.Error(err),
		)
	}
}

// NoopPublisher discards metrics, for local development.
type NoopPublisher struct{}

// RecordCount drops the datum.
func (NoopPublisher) RecordCount(ctx context.Context, metricName string, value int, dimensions map[string]string) {
}
