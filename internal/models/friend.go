package models

import "time"

// FriendRequestStatus состояние заявки в друзья.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "pending"
	FriendRequestAccepted FriendRequestStatus = "accepted"
	FriendRequestRejected FriendRequestStatus = "rejected"
)

// FriendRequest направленное ребро графа дружбы от отправителя к получателю.
type FriendRequest struct {
	ID           int                 `json:"id"`
	FromUserUID  string              `json:"from_user"`
	FromUsername string              `json:"from_username"`
	ToUserUID    string              `json:"to_user"`
	ToUsername   string              `json:"to_username"`
	Status       FriendRequestStatus `json:"status"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Friend второй участник принятой заявки.
type Friend struct {
	UID      string
	Username string
}

// DummyFriendRequest тело запроса на создание заявки.
type DummyFriendRequest struct {
	ToUser string `json:"to_user" validate:"required,uuid"`
}

// DummyFriendStatus тело запроса на изменение статуса заявки.
type DummyFriendStatus struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}
