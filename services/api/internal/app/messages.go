package app

import (
	"context"
	"fmt"

	"jobconnect/pkg/domain"
	"jobconnect/pkg/store"
	"jobconnect/pkg/validation"
)

// SendMessage delivers a direct message. When it references an application
// the two parties must be that application's job seeker and employer.
func (a *App) SendMessage(ctx context.Context, actor Actor, in validation.MessageInput) (domain.Message, error) {
	in, err := validation.Message(in)
	if err != nil {
		return domain.Message{}, asValidation(err)
	}
	if in.ReceiverID == actor.UserID {
		return domain.Message{}, invalidField("receiverId", "cannot message yourself")
	}
	if _, ok, err := a.store.GetUserByID(ctx, in.ReceiverID); err != nil {
		return domain.Message{}, fmt.Errorf("load receiver: %w", err)
	} else if !ok {
		return domain.Message{}, notFound("User")
	}
	if in.ApplicationID != nil {
		if err := a.checkApplicationParties(ctx, *in.ApplicationID, actor.UserID, in.ReceiverID); err != nil {
			return domain.Message{}, err
		}
	}
	msg := domain.Message{
		ID:            store.NewID(),
		SenderID:      actor.UserID,
		ReceiverID:    in.ReceiverID,
		ApplicationID: in.ApplicationID,
		Subject:       in.Subject,
		Content:       in.Content,
		Attachments:   in.Attachments,
		CreatedAt:     a.now(),
	}
	if err := a.store.CreateMessage(ctx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("create message: %w", err)
	}
	return msg, nil
}

func (a *App) checkApplicationParties(ctx context.Context, applicationID, sender, receiver string) error {
	app, ok, err := a.store.GetApplication(ctx, applicationID)
	if err != nil {
		return fmt.Errorf("load application: %w", err)
	}
	if !ok {
		return notFound("Application")
	}
	employer, ok, err := a.store.GetEmployer(ctx, app.Job.EmployerID)
	if err != nil {
		return fmt.Errorf("load employer: %w", err)
	}
	if !ok {
		return notFound("Application")
	}
	seekerUser, employerUser := app.JobSeeker.UserID, employer.UserID
	if (sender == seekerUser && receiver == employerUser) || (sender == employerUser && receiver == seekerUser) {
		return nil
	}
	return notFound("Application")
}

// ListConversations returns the caller's most recent messages in either
// direction.
func (a *App) ListConversations(ctx context.Context, actor Actor) ([]domain.MessageWithUsers, error) {
	msgs, err := a.store.ListConversations(ctx, actor.UserID, store.ConversationLimit)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	return msgs, nil
}

// ListThread returns the messages between the caller and another user,
// oldest first.
func (a *App) ListThread(ctx context.Context, actor Actor, otherUserID string) ([]domain.MessageWithUsers, error) {
	msgs, err := a.store.ListThread(ctx, actor.UserID, otherUserID)
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	return msgs, nil
}

// MarkRead flags a message addressed to the caller as read.
func (a *App) MarkRead(ctx context.Context, actor Actor, id string) error {
	ok, err := a.store.MarkMessageRead(ctx, id, actor.UserID)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	if !ok {
		return notFound("Message")
	}
	return nil
}
