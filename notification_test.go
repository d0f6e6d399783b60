package main

import (
	"testing"
	"time"

	"coreops-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestSubscribeOverwritesSameToken(t *testing.T) {
	notifier, _ := newTestNotifier()

	notifier.Subscribe("token-1", services.PushSubscription{
		UserID:   1,
		Endpoint: "https://push.example/a",
	})
	notifier.Subscribe("token-1", services.PushSubscription{
		UserID:   1,
		Endpoint: "https://push.example/b",
	})
	assert.Equal(t, 1, notifier.SubscriptionCount())

	notifier.Subscribe("token-2", services.PushSubscription{
		UserID:   1,
		Endpoint: "https://push.example/c",
	})
	assert.Equal(t, 2, notifier.SubscriptionCount())

	notifier.Unsubscribe("token-1")
	assert.Equal(t, 1, notifier.SubscriptionCount())

	// Отмена несуществующей подписки не ошибка
	notifier.Unsubscribe("token-404")
	assert.Equal(t, 1, notifier.SubscriptionCount())
}

func TestNotifyDeliversToAllUserSessions(t *testing.T) {
	notifier, sender := newTestNotifier()

	notifier.Subscribe("token-1", services.PushSubscription{UserID: 1, Endpoint: "https://push.example/a"})
	notifier.Subscribe("token-2", services.PushSubscription{UserID: 1, Endpoint: "https://push.example/b"})
	notifier.Subscribe("token-3", services.PushSubscription{UserID: 2, Endpoint: "https://push.example/c"})

	notifier.Notify("Test", "body", "newTask", 1)

	assert.Eventually(t, func() bool {
		return sender.sentCount() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestNotifyDropsInvalidEventType(t *testing.T) {
	notifier, sender := newTestNotifier()
	notifier.Subscribe("token-1", services.PushSubscription{UserID: 1, Endpoint: "https://push.example/a"})

	notifier.Notify("Test", "body", "unknownEvent", 1)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, sender.sentCount())
}

func TestNotifyFailureDoesNotBlockOthers(t *testing.T) {
	notifier, sender := newTestNotifier()
	sender.failFor = "https://push.example/broken"

	notifier.Subscribe("token-1", services.PushSubscription{UserID: 1, Endpoint: "https://push.example/broken"})
	notifier.Subscribe("token-2", services.PushSubscription{UserID: 1, Endpoint: "https://push.example/ok"})

	notifier.Notify("Test", "body", "comment", 1)

	assert.Eventually(t, func() bool {
		return sender.sentCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, "https://push.example/ok", sender.sent[0].Endpoint)
}

func TestNotifySkipsUnrelatedUsers(t *testing.T) {
	notifier, sender := newTestNotifier()

	notifier.Subscribe("token-1", services.PushSubscription{UserID: 1, Endpoint: "https://push.example/a"})
	notifier.Subscribe("token-2", services.PushSubscription{UserID: 2, Endpoint: "https://push.example/b"})

	notifier.Notify("Test", "body", "newMessage", 2)

	assert.Eventually(t, func() bool {
		return sender.sentCount() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, uint(2), sender.sent[0].UserID)
}
