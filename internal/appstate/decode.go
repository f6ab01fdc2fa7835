package appstate

import (
	"bytes"
	"fmt"

	"develevate/internal/core"
	"develevate/internal/store"
	"develevate/pkg/schema"
)

// DecodeAction converts a JSON action into an application action. Tags outside
// the vocabulary decode to Unknown. Payloads that do not fit their tag, and
// goal, progress and date values outside their ranges, fail with
// store.ErrInvalidActionPayload.
func DecodeAction(raw store.RawAction) (Action, error) {
	switch raw.Type {
	case TypeSetUser:
		if isNull(raw.Payload) {
			return SetUser{}, nil
		}
		user, err := store.DecodePayload[schema.Profile](raw)
		if err != nil {
			return nil, err
		}
		return SetUser{User: &user}, nil
	case TypeUpdateLearningProgress:
		a, err := store.DecodePayload[UpdateLearningProgress](raw)
		if err != nil {
			return nil, err
		}
		if a.Topic == "" || a.ModuleID == "" {
			return nil, invalid(raw.Type, fmt.Errorf("topic and moduleId are required"))
		}
		if err := schema.ValidateProgress(a.Progress); err != nil {
			return nil, invalid(raw.Type, fmt.Errorf("progress %w", err))
		}
		return a, nil
	case TypeAddChatMessage:
		msg, err := store.DecodePayload[schema.ChatMessage](raw)
		if err != nil {
			return nil, err
		}
		return AddChatMessage{Message: msg}, nil
	case TypeAddBookmark:
		id, err := decodeString(raw)
		if err != nil {
			return nil, err
		}
		return AddBookmark{ID: id}, nil
	case TypeRemoveBookmark:
		id, err := decodeString(raw)
		if err != nil {
			return nil, err
		}
		return RemoveBookmark{ID: id}, nil
	case TypeAddAssignment:
		asg, err := store.DecodePayload[schema.Assignment](raw)
		if err != nil {
			return nil, err
		}
		if err := schema.ValidateAssignment(&asg); err != nil {
			return nil, invalid(raw.Type, err)
		}
		return AddAssignment{Assignment: asg}, nil
	case TypeCompleteAssignment:
		id, err := decodeString(raw)
		if err != nil {
			return nil, err
		}
		return CompleteAssignment{ID: id}, nil
	case TypeUpdateNews:
		items, err := store.DecodePayload[[]schema.NewsItem](raw)
		if err != nil {
			return nil, err
		}
		return UpdateNews{Items: items}, nil
	case TypeUpdateResume:
		r, err := store.DecodePayload[schema.Resume](raw)
		if err != nil {
			return nil, err
		}
		return UpdateResume{Resume: r}, nil
	case TypeToggleDarkMode:
		return ToggleDarkMode{}, nil
	case TypeSetCurrentModule:
		module, err := decodeString(raw)
		if err != nil {
			return nil, err
		}
		if err := schema.ValidateModuleID(module); err != nil {
			return nil, invalid(raw.Type, err)
		}
		return SetCurrentModule{Module: module}, nil
	case TypeAddDailyGoal, TypeCompleteDailyGoal, TypeRemoveGoal:
		goal, err := decodeString(raw)
		if err != nil {
			return nil, err
		}
		if err := schema.ValidateGoal(goal); err != nil {
			return nil, invalid(raw.Type, err)
		}
		switch raw.Type {
		case TypeAddDailyGoal:
			return AddDailyGoal{Goal: goal}, nil
		case TypeCompleteDailyGoal:
			return CompleteDailyGoal{Goal: goal}, nil
		default:
			return RemoveGoal{Goal: goal}, nil
		}
	case TypeUpdateStreak:
		a, err := store.DecodePayload[UpdateStreak](raw)
		if err != nil {
			return nil, err
		}
		if err := schema.ValidateDate(a.Date); err != nil {
			return nil, invalid(raw.Type, err)
		}
		return a, nil
	case TypeHydrate:
		fields, err := store.DecodePayload[store.Fields](raw)
		if err != nil {
			return nil, err
		}
		return Hydrate{Fields: fields}, nil
	default:
		return Unknown{Type: raw.Type}, nil
	}
}

func decodeString(raw store.RawAction) (string, error) {
	return store.DecodePayload[string](raw)
}

func isNull(payload []byte) bool {
	p := bytes.TrimSpace(payload)
	return len(p) == 0 || bytes.Equal(p, []byte("null"))
}

func invalid(actionType string, err error) error {
	return &core.ValidationError{
		Field:   actionType,
		Message: err.Error(),
		Err:     fmt.Errorf("%w: %w", store.ErrInvalidActionPayload, err),
	}
}
