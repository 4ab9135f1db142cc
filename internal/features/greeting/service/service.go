package service

import "context"

// GreetingService answers the status read made by bookmarks web clients.
type GreetingService interface {
	Greet(ctx context.Context) string
}

type greetingService struct {
	message string
}

func New(message string) GreetingService {
	return &greetingService{message: message}
}

func (s *greetingService) Greet(context.Context) string {
	return s.message
}
