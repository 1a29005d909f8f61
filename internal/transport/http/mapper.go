package http

import (
	"encoding/json"

	"github.com/samber/lo"

	"github.com/relaychat/relaychat-server/internal/core"
	"github.com/relaychat/relaychat-server/internal/proto"
	"github.com/relaychat/relaychat-server/internal/store"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoin:
		var join proto.JoinData
		if len(inbound.Data) > 0 {
			if err := json.Unmarshal(inbound.Data, &join); err != nil {
				return nil, nil, err
			}
		}
		return &core.Command{
			Kind:      core.CommandJoin,
			ProfileID: join.UserID,
		}, nil, nil
	case proto.InboundTypeMsg:
		var msg proto.MsgData
		if len(inbound.Data) > 0 {
			if err := json.Unmarshal(inbound.Data, &msg); err != nil {
				return nil, nil, err
			}
		}
		return &core.Command{
			Kind:      core.CommandSendMessage,
			ProfileID: msg.UserID,
			Text:      msg.Text,
		}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown message type"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventInit:
		return proto.Outbound{
			Type: proto.OutboundTypeInit,
			Data: proto.InitData{
				Users: lo.Map(event.Users, func(p store.Profile, _ int) proto.User {
					return userFromProfile(p)
				}),
			},
		}
	case core.EventSystem:
		return proto.Outbound{
			Type: proto.OutboundTypeSystem,
			Data: proto.SystemData{Text: event.Text},
		}
	case core.EventMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeMsg,
			Data: proto.MessageData{
				ID:   event.Message.ID,
				User: userFromProfile(event.Message.Author),
				Text: event.Message.Text,
				TS:   event.Message.SentAt.UnixMilli(),
			},
		}
	case core.EventProfileUpdated:
		return proto.Outbound{
			Type: proto.OutboundTypeUserUpdate,
			Data: userFromProfile(event.Profile),
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown event"}}
	}
}

func userFromProfile(p store.Profile) proto.User {
	return proto.User{
		ID:     p.ID,
		Name:   p.Name,
		Avatar: p.Avatar,
	}
}
