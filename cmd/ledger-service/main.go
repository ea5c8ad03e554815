package main

import "ai-accountant/internal/bootstrap/ledger"

// @title AI Accountant Ledger API
// @version 1.0
// @description Учет операций из распознанных документов: нормализация сумм, подбор счетов, поиск аномалий
// @host localhost:8080
// @BasePath /
func main() { ledger.StartLedgerService() }
