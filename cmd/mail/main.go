package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/vvf-mortara/turni-manager/backend/internal/config"
	"github.com/vvf-mortara/turni-manager/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

// Oggetto e template per ogni tipo di messaggio in coda.
var mailKinds = map[string]struct {
	subject  string
	template string
}{
	"create_user":    {"Turni VVF Mortara - credenziali di accesso", "./templates/new_account_email.html"},
	"reset_password": {"Turni VVF Mortara - reimpostazione password", "./templates/reset_password_otp_email.html"},
	"change_email":   {"Turni VVF Mortara - cambio email", "./templates/change_email_email.html"},
	"schedule_ready": {"Turni VVF Mortara - turni generati", "./templates/schedule_ready_email.html"},
}

func main() {
	/**********************************************
	 * Logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	/**********************************************
	 * Configurazione
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("impossibile caricare la configurazione", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Client SMTP
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("impossibile creare il client di posta", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	// Verifica subito che il server di posta sia raggiungibile
	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("impossibile connettersi al server di posta", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * Connessione a RabbitMQ
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("impossibile connettersi a RabbitMQ", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("impossibile aprire il canale", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"email_queue", // nome della coda
		true,          // persistente
		false,         // niente auto-delete, la coda resta anche senza consumatori
		false,         // non esclusiva
		false,         // attende la conferma di RabbitMQ
		nil,           // parametri extra
	)
	if err != nil {
		logger.Error("impossibile dichiarare la coda", slog.String("error", err.Error()))
		return
	}

	// Intercetta CTRL+C
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name, // coda
		"",     // identificativo del consumatore, lo assegna RabbitMQ
		false,  // niente ack automatico
		false,  // non esclusivo
		false,  // no-local, RabbitMQ non lo supporta comunque
		false,  // attende la risposta di RabbitMQ
		nil,    // parametri extra
	)
	if err != nil {
		logger.Error("impossibile consumare i messaggi", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Contesto per fermare la goroutine di consumo
	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("messaggio ricevuto", slog.String("message", string(msg.Body)))
				mailMessage := domain.MailMessage{}
				if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
					logger.Error("deserializzazione del messaggio non riuscita", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				kind, ok := mailKinds[mailMessage.Type]
				if !ok {
					logger.Error("tipo di email non supportato", slog.String("type", mailMessage.Type))
					_ = msg.Nack(false, false)
					continue
				}

				// Costruisce l'email
				m := mail.NewMsg()
				if err := m.From(cfg.Email.SMTP.Username); err != nil {
					logger.Error("impossibile impostare il mittente", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(mailMessage.To); err != nil {
					logger.Error("impossibile impostare il destinatario", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				tmpl, err := template.ParseFiles(kind.template)
				if err != nil {
					logger.Error("impossibile caricare il template", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
					logger.Error("impossibile impostare il corpo", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(kind.subject)

				// Invio
				if err := client.DialAndSend(m); err != nil {
					logger.Error("invio dell'email non riuscito", slog.String("error", err.Error()))
					_ = msg.Nack(false, true) // rimette il messaggio in coda
					continue
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("in attesa di messaggi... (CTRL+C per uscire)")
	<-sigChan

	slog.Info("arresto del mail worker...")
	cancel()
	wg.Wait()
	slog.Info("mail worker arrestato")
}
