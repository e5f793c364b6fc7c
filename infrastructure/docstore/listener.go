package docstore

import (
	"time"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// changeListener encapsula a conexão dedicada de LISTEN/NOTIFY. Uma queda da
// conexão é repassada via onFatal: o operador precisa reabrir a sessão, não há
// retry automático em nenhum ponto da aplicação.
type changeListener struct {
	listener *pq.Listener
	out      chan string
}

func newChangeListener(dsn, channel string, onFatal func(error)) (*changeListener, error) {
	listener := pq.NewListener(dsn, 10*time.Second, time.Minute, func(event pq.ListenerEventType, err error) {
		if err == nil {
			return
		}
		logrus.WithError(err).Error("Falha no canal de notificações do document store")
		if onFatal != nil {
			onFatal(err)
		}
	})

	if err := listener.Listen(channel); err != nil {
		return nil, err
	}

	l := &changeListener{
		listener: listener,
		out:      make(chan string, 16),
	}

	go l.run()

	return l, nil
}

func (l *changeListener) run() {
	// O driver exige um ping periódico para detectar conexões mortas.
	ping := time.NewTicker(90 * time.Second)
	defer ping.Stop()

	for {
		select {
		case notification, ok := <-l.listener.Notify:
			if !ok {
				close(l.out)
				return
			}
			if notification == nil {
				// Reconexão interna do driver: os assinantes recarregam no
				// próximo evento; nada a repassar.
				continue
			}
			l.out <- notification.Extra
		case <-ping.C:
			if err := l.listener.Ping(); err != nil {
				logrus.WithError(err).Error("Ping do listener de notificações falhou")
			}
		}
	}
}

// Notifications entrega o nome da coleção alterada a cada evento.
func (l *changeListener) Notifications() <-chan string {
	return l.out
}
