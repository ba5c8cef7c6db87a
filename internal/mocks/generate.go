package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name RecordSource --dir ../domain/team --output domain/team --outpkg teammock --filename record_source_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Source --dir ../domain/schedule --output domain/schedule --outpkg schedulemock --filename source_mock.go
