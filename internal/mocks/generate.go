// Package mocks provides mock implementations for testing the job review services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the ports in
// internal/core and the DynamoDB client subset in internal/data.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	repo := mocks.NewMockJobAdRepository(ctrl)
//	repo.EXPECT().Count(gomock.Any()).Return(45, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=jobad_repository_mock.go github.com/jobpilot/jobreview/internal/core JobAdRepository

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=list_state_store_mock.go github.com/jobpilot/jobreview/internal/core ListStateStore

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=decision_claimer_mock.go github.com/jobpilot/jobreview/internal/core DecisionClaimer

// DynamoAPI is the Query/GetItem/UpdateItem subset of *dynamodb.Client.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=dynamo_api_mock.go github.com/jobpilot/jobreview/internal/data DynamoAPI
