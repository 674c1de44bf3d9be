package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.BrazilianPortuguese

	// Validation
	message.SetString(lang, MsgSuccessRate, "Porcentagem de sucesso deve ser um número entre 0 e 100")
	message.SetString(lang, MsgMaxAttempts, "Número máximo de tentativas deve ser um número positivo")
	message.SetString(lang, MsgMaxAttemptsLimit, "Número máximo de tentativas não pode passar de %d")

	// API
	message.SetString(lang, MsgInvalidBody, "Corpo da requisição inválido")
	message.SetString(lang, MsgInternal, "Erro interno do servidor")
	message.SetString(lang, MsgNotFound, "Rota não encontrada")
	message.SetString(lang, MsgRateLimited, "Muitas requisições, tente novamente em instantes")
	message.SetString(lang, MsgServerUp, "Servidor funcionando!")
	message.SetString(lang, MsgAPIDescription, "API para simulação de tentativas baseado em porcentagem de sucesso")

	// Report
	message.SetString(lang, MsgResultsTitle, "Resultado das %d simulações")
	message.SetString(lang, MsgAverageAttempts, "Média de tentativas:")
	message.SetString(lang, MsgSuccesses, "Sucessos:")
	message.SetString(lang, MsgFailures, "Falhas:")
	message.SetString(lang, MsgSuccessPercentage, "Porcentagem de sucesso:")
	message.SetString(lang, MsgLimitReached, "Limite atingido:")
	message.SetString(lang, MsgLimitReachedValue, "Sim (alguma simulação)")
	message.SetString(lang, MsgTheoretical, "Probabilidade teórica:")
	message.SetString(lang, MsgDetails, "Detalhes das simulações:")
	message.SetString(lang, MsgSimulation, "Simulação %d:")
	message.SetString(lang, MsgAttempts, "%d tentativas")
}
