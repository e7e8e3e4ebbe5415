package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/playerid --output domain/playerid --outpkg playeridmock --filename repository_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/rankings --output domain/rankings --outpkg rankingsmock --filename repository_mock.go
