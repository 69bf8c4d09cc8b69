package discord_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/menubot"
	"github.com/aretw0/menubot/pkg/adapters/discord"
	"github.com/aretw0/menubot/pkg/domain"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type post struct {
	channel string
	content string
}

func recorder(posts *[]post) discord.SendFunc {
	return func(channelID, content string) error {
		*posts = append(*posts, post{channelID, content})
		return nil
	}
}

func message(channel, author, content string, bot bool) *discordgo.Message {
	return &discordgo.Message{
		ChannelID: channel,
		Content:   content,
		Author:    &discordgo.User{ID: author, Bot: bot},
	}
}

func TestHandleMessage_Conversation(t *testing.T) {
	var posts []post
	b := menubot.New()
	a := discord.NewWithSender(b, recorder(&posts))
	ctx := context.Background()

	require.NoError(t, a.HandleMessage(ctx, message("c1", "u1", "hello", false)))
	require.Len(t, posts, 2)
	assert.Equal(t, "c1", posts[0].channel)
	assert.Equal(t, "Ready to take your order...", posts[0].content)
	assert.Contains(t, posts[1].content, "What would you like for dinner?\n1. Potato Salad - $5.99\n2. Tuna Sandwich - $6.89")

	posts = nil
	require.NoError(t, a.HandleMessage(ctx, message("c1", "u1", "2", false)))
	assert.Equal(t, "Added Tuna Sandwich to your cart.\nCurrent total: $6.89", posts[0].content)

	st, err := b.Sessions().Load(ctx, discord.SessionID("c1", "u1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Tuna Sandwich"}, st.Cart.Items)
}

func TestHandleMessage_SeparateAuthors(t *testing.T) {
	var posts []post
	b := menubot.New()
	a := discord.NewWithSender(b, recorder(&posts))
	ctx := context.Background()

	require.NoError(t, a.HandleMessage(ctx, message("c1", "u1", "hi", false)))
	require.NoError(t, a.HandleMessage(ctx, message("c1", "u1", "1", false)))
	require.NoError(t, a.HandleMessage(ctx, message("c1", "u2", "hi", false)))

	ids, err := b.Sessions().List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c1:u1", "c1:u2"}, ids)

	other, err := b.Sessions().Load(ctx, "c1:u2")
	require.NoError(t, err)
	assert.True(t, other.Cart.IsEmpty())
}

func TestHandleMessage_Ignored(t *testing.T) {
	var posts []post
	a := discord.NewWithSender(menubot.New(), recorder(&posts))
	ctx := context.Background()

	require.NoError(t, a.HandleMessage(ctx, message("c1", "bot", "hello", true)))
	require.NoError(t, a.HandleMessage(ctx, message("c1", "u1", "   ", false)))
	require.NoError(t, a.HandleMessage(ctx, &discordgo.Message{ChannelID: "c1", Content: "x"}))
	require.NoError(t, a.HandleMessage(ctx, nil))
	assert.Empty(t, posts)
}

func TestHandleMessage_SendFailure(t *testing.T) {
	boom := errors.New("discord down")
	a := discord.NewWithSender(menubot.New(), func(string, string) error { return boom })

	err := a.HandleMessage(context.Background(), message("c1", "u1", "hello", false))
	assert.ErrorIs(t, err, boom)
}

func TestHandleTyping(t *testing.T) {
	var posts []post
	b := menubot.New(menubot.WithEventNotices(true))
	typing := &discordgo.TypingStart{ChannelID: "c1", UserID: "u1"}

	off := discord.NewWithSender(b, recorder(&posts))
	require.NoError(t, off.HandleTyping(context.Background(), typing))
	assert.Empty(t, posts)

	on := discord.NewWithSender(b, recorder(&posts), discord.WithTypingActivity(true))
	require.NoError(t, on.HandleTyping(context.Background(), typing))
	require.Len(t, posts, 1)
	assert.Equal(t, "[typing event detected]", posts[0].content)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "plain", discord.Format(domain.Message{Text: "plain"}))
	assert.Equal(t, "Pick\n1. A\n2. B", discord.Format(domain.Message{Text: "Pick", Choices: []string{"A", "B"}}))
}

func TestStartWithoutSession(t *testing.T) {
	a := discord.NewWithSender(menubot.New(), func(string, string) error { return nil })
	assert.NoError(t, a.Start(context.Background()))
	assert.NoError(t, a.Stop())
}
