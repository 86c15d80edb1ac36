package dispatch

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"go.uber.org/zap"
)

// LambdaInvoker запускает AWS Lambda функции в режиме Event:
// вызов возвращается сразу после приёма, retry выполняет сама Lambda
type LambdaInvoker struct {
	logger *zap.Logger
	client *lambda.Client
}

// NewLambdaInvoker создаёт invoker поверх готового Lambda клиента
func NewLambdaInvoker(logger *zap.Logger, client *lambda.Client) *LambdaInvoker {
	return &LambdaInvoker{
		logger: logger,
		client: client,
	}
}

// InvokeAsync асинхронно вызывает функцию по имени или ARN
func (i *LambdaInvoker) InvokeAsync(ctx context.Context, function string, payload []byte) error {
	out, err := i.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(function),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("invoke %s: %w", function, err)
	}

	i.logger.Debug("lambda invocation accepted",
		zap.String("function", function),
		zap.Int32("status_code", out.StatusCode),
	)

	return nil
}
