// Package main — Repository katmanı başlatma.
//
// initRepositories, tüm repository implementasyonlarını oluşturur.
// Her repository aynı *sql.DB bağlantısını alır ve interface döner.
// main.go'daki wire-up'ı modülerleştirmek için bu dosyaya taşındı.
package main

import (
	"database/sql"

	"github.com/vkayy/ev-cord/repository"
)

// Repositories, tüm repository instance'larını tutan container struct.
//
// Neden struct? Ayrı ayrı değişkenler yerine tek struct kullanmak
// fonksiyon imzalarını temiz tutar ve yeni repository eklendiğinde
// sadece struct + initRepositories güncellenir.
type Repositories struct {
	Profile      repository.ProfileRepository
	Session      repository.SessionRepository
	Server       repository.ServerRepository
	Channel      repository.ChannelRepository
	Member       repository.MemberRepository
	Message      repository.MessageRepository
	Conversation repository.ConversationRepository
}

// initRepositories, veritabanı bağlantısından tüm repository'leri oluşturur.
//
// Her NewSQLite* fonksiyonu aynı *sql.DB'yi alır — Go'nun sql.DB'si
// thread-safe connection pool'dur, paylaşılması güvenlidir.
func initRepositories(conn *sql.DB) *Repositories {
	return &Repositories{
		Profile:      repository.NewSQLiteProfileRepo(conn),
		Session:      repository.NewSQLiteSessionRepo(conn),
		Server:       repository.NewSQLiteServerRepo(conn),
		Channel:      repository.NewSQLiteChannelRepo(conn),
		Member:       repository.NewSQLiteMemberRepo(conn),
		Message:      repository.NewSQLiteMessageRepo(conn),
		Conversation: repository.NewSQLiteConversationRepo(conn),
	}
}
