package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/saulo-duarte/quizzer/internal/container"
)

func main() {
	c := container.New(context.Background())
	adapter := chiadapter.New(c.Router())
	lambda.Start(adapter.ProxyWithContext)
}
