package appconfig

import (
	"github.com/SaiNageswarS/go-api-boot/config"
)

type AppConfig struct {
	config.BootConfig `ini:",extends"`

	FAQPath            string `env:"FAQ-PATH" ini:"faq_path"`
	ChatDataDir        string `env:"CHAT-DATA-DIR" ini:"chat_data_dir"`
	QuizBankPath       string `env:"QUIZ-BANK-PATH" ini:"quiz_bank_path"`
	CompletionProvider string `env:"COMPLETION-PROVIDER" ini:"completion_provider"`
	CompletionModel    string `env:"COMPLETION-MODEL" ini:"completion_model"`
	ExtractorURL       string `env:"EXTRACTOR-URL" ini:"extractor_url"`
	HTTPPort           string `env:"HTTP-PORT" ini:"http_port"`
}
